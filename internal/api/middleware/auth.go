package middleware

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RidingSchoolService/internal/api/handlers"
)

// AdminKeyHeader заголовок с ключом администратора для защищенных маршрутов
const AdminKeyHeader = "X-Admin-Key"

// AdminAuth проверяет ключ администратора в заголовке запроса.
// Ключ задается в конфигурации сервиса; пустой ключ в конфигурации
// отключает защиту (локальная разработка).
func AdminAuth(adminKey string) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if adminKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get(AdminKeyHeader)
			if key == "" {
				handlers.RespondUnauthorized(w, "требуется заголовок "+AdminKeyHeader)
				return
			}
			if key != adminKey {
				handlers.RespondForbidden(w, "неверный ключ администратора")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
