package handlers

import (
	intconfig "backend/internal/config"
	"backend/internal/storage"
)

var (
	jwtSecret  []byte
	fileStore  storage.Store
	defaultFee float64
)

// Configure wires handler-level collaborators once at startup.
func Configure(env intconfig.Env, store storage.Store) {
	jwtSecret = []byte(env.JWTSecret)
	fileStore = store
	defaultFee = env.ServiceFeePercent
}
