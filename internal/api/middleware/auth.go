package middleware

import (
	"context"
	"net/http"

	"github.com/m04kA/Clinic-QueueService/internal/api/handlers"
)

type contextKey string

const staffIDKey contextKey = "staffID"

// StaffHeader заголовок с идентификатором сотрудника регистратуры
const StaffHeader = "X-Staff-ID"

// Auth требует наличия заголовка X-Staff-ID
// Используется для действий персонала: очередь дня, отметка приема,
// задержки, блокировки, экстренные записи
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		staffID := r.Header.Get(StaffHeader)
		if staffID == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-Staff-ID")
			return
		}

		ctx := context.WithValue(r.Context(), staffIDKey, staffID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Identify кладет X-Staff-ID в контекст, если заголовок передан
// Публичные маршруты остаются доступными без заголовка, но handlers
// могут проверить присутствие сотрудника
func Identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if staffID := r.Header.Get(StaffHeader); staffID != "" {
			ctx := context.WithValue(r.Context(), staffIDKey, staffID)
			r = r.WithContext(ctx)
		}
		next.ServeHTTP(w, r)
	})
}

// GetStaffID извлекает идентификатор сотрудника из контекста
func GetStaffID(ctx context.Context) (string, bool) {
	staffID, ok := ctx.Value(staffIDKey).(string)
	return staffID, ok
}
