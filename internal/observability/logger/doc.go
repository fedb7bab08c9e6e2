// Package logger expone un logger zap singleton con scoping por contexto.
//
// Inicialización (una vez en main):
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})
//	defer logger.Sync()
//
// En handlers y services:
//
//	log := logger.From(ctx)
//	log.Info("note created", logger.NoteID(id))
//
// "dev" usa consola con colores, "prod" usa JSON.
package logger
