package api

// AdminLoginRequest представляет запрос на вход в панель отчетов
type AdminLoginRequest struct {
	Password string `json:"password"` // общий пароль администратора
}

// AdminTokenResponse представляет ответ с токеном администратора
type AdminTokenResponse struct {
	AccessToken string `json:"accessToken"` // JWT access token
	ExpiresIn   int64  `json:"expiresIn"`   // время жизни токена в секундах
}

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}

// HealthResponse представляет ответ проверки состояния сервера
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}
