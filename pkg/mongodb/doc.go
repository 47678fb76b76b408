// Package mongodb manages MongoDB connections for the authkit services.
//
// Configuration is environment-driven via caarlos0/env tags so the same
// binary runs unchanged across development and production. Connect retries
// transient failures with a fixed interval, which covers MongoDB Atlas
// rolling restarts without any caller-side logic.
//
// # Usage
//
//	var cfg mongodb.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongodb.ConnectDatabase(ctx, cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer db.Client().Disconnect(context.Background())
//
// Healthcheck returns a check function for readiness endpoints; failures
// unwrap to ErrHealthcheckFailed via errors.Is.
package mongodb
