package domain

// transitionMap допустимые переходы статусов записи
// Статусы seen и cancelled терминальные - из них переходов нет
var transitionMap = map[BookingStatus][]BookingStatus{
	StatusUpcoming: {StatusSeen, StatusCancelled},
}

// CanTransition проверяет допустимость перехода статуса
func CanTransition(from, to BookingStatus) bool {
	allowed, ok := transitionMap[from]
	if !ok {
		return false
	}
	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}
