package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
)

type Credentials struct {
	Login    string `json:"login" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

var validate = validator.New()

// Validate rejects empty logins and passwords longer than bcrypt accepts.
func (c Credentials) Validate() error {
	return validate.Struct(c)
}

func RegisterHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		if err := req.Validate(); err != nil {
			http.Error(w, "login and password required", http.StatusBadRequest)
			return
		}
		if _, err := s.Register(r.Context(), req.Login, req.Password); err != nil {
			if errors.Is(err, ErrUserExists) {
				http.Error(w, "user already exists", http.StatusBadRequest)
				return
			}
			logrus.Errorf("register handler: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		logrus.Infof("user %s registered", req.Login)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"User registered successfully"}`))
	}
}

func LoginHandler(s *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req Credentials
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		token, err := s.Login(r.Context(), req.Login, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				http.Error(w, "invalid login or password", http.StatusUnauthorized)
				return
			}
			logrus.Errorf("login handler: %v", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(TokenResponse{Token: token})
	}
}
