// path: database/database.go
package database

import (
	"context"
	"errors"
	"net/url"
	"os"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// ReportsCollection is where the cloud backend keeps one document per report.
const ReportsCollection = "ocorrencias"

var client *mongo.Client
var db *mongo.Database

// Connect establishes a singleton MongoDB connection.
func Connect(ctx context.Context, log *zap.Logger) error {
	if client != nil && db != nil {
		return nil
	}

	cfg, reason := resolveConfig()

	start := time.Now()
	log.Info("mongo: connecting",
		zap.String("mode", cfg.Mode),
		zap.String("uri", redactURI(cfg.URI)),
		zap.String("db", cfg.DBName),
		zap.String("reason", reason))

	dctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	c, err := mongo.Connect(dctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return errors.Join(errors.New("mongo connect"), err)
	}
	if err = c.Ping(dctx, nil); err != nil {
		_ = c.Disconnect(context.Background())
		return errors.Join(errors.New("mongo ping"), err)
	}

	client = c
	db = c.Database(cfg.DBName)

	if err := createIndexes(); err != nil {
		log.Warn("mongo: index creation warnings", zap.Error(err))
	}

	log.Info("mongo: connected", zap.Duration("took", time.Since(start).Round(time.Millisecond)))
	return nil
}

func Disconnect(ctx context.Context) error {
	if client == nil {
		return nil
	}
	defer func() { client, db = nil, nil }()
	return client.Disconnect(ctx)
}

func Client() *mongo.Client { return client }

func Col(name string) *mongo.Collection {
	if db == nil {
		panic("database not connected: call database.Connect first")
	}
	return db.Collection(name)
}

// --- internal ---

type config struct {
	Mode   string
	URI    string
	DBName string
}

// resolveConfig returns the chosen config and a human-readable reason.
func resolveConfig() (config, string) {
	mode := strings.ToLower(getenv("MONGO_MODE", "auto"))
	dbname := getenv("MONGO_DB", "ocorrencias")

	explicit := strings.TrimSpace(os.Getenv("MONGO_URI"))
	local := getenv("MONGO_URI_LOCAL", "mongodb://localhost:27017")
	remote := strings.TrimSpace(os.Getenv("MONGO_URI_REMOTE"))

	switch mode {
	case "local":
		return config{Mode: "local", URI: chooseFirstNonEmpty(explicit, local), DBName: dbname},
			"MONGO_MODE=local"
	case "remote":
		if remote != "" {
			return config{Mode: "remote", URI: remote, DBName: dbname}, "MONGO_MODE=remote, using MONGO_URI_REMOTE"
		}
		return config{Mode: "local", URI: chooseFirstNonEmpty(explicit, local), DBName: dbname},
			"remote missing, fallback to explicit/local"
	default: // auto, precedence: remote > explicit > local
		if remote != "" {
			return config{Mode: "remote", URI: remote, DBName: dbname}, "auto: MONGO_URI_REMOTE present"
		}
		if explicit != "" {
			return config{Mode: "auto", URI: explicit, DBName: dbname}, "auto: MONGO_URI present"
		}
		return config{Mode: "local", URI: local, DBName: dbname}, "auto: fallback to local"
	}
}

func createIndexes() error {
	if db == nil {
		return errors.New("db is nil")
	}
	ctxIdx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var errs []string
	col := Col(ReportsCollection)

	if _, err := col.Indexes().CreateOne(ctxIdx, mongo.IndexModel{
		Keys: bson.D{{Key: "timestamp", Value: -1}},
	}); err != nil {
		errs = append(errs, "timestamp: "+err.Error())
	}
	if _, err := col.Indexes().CreateOne(ctxIdx, mongo.IndexModel{
		Keys: bson.D{{Key: "codOcorrencia", Value: 1}},
	}); err != nil {
		errs = append(errs, "codOcorrencia: "+err.Error())
	}
	if _, err := col.Indexes().CreateOne(ctxIdx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	}); err != nil {
		errs = append(errs, "userId: "+err.Error())
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// --- utils ---

func redactURI(raw string) string {
	if raw == "" || !strings.Contains(raw, "://") {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	u.User = url.UserPassword("****", "****")
	return u.String()
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func chooseFirstNonEmpty(v1, v2 string) string {
	if strings.TrimSpace(v1) != "" {
		return v1
	}
	return v2
}
