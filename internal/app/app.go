package app

import (
	"database/sql"
	"errors"

	"github.com/cha0jun/leavey/internal/audit"
	"github.com/cha0jun/leavey/internal/category"
	"github.com/cha0jun/leavey/internal/config"
	"github.com/cha0jun/leavey/internal/document"
	"github.com/cha0jun/leavey/internal/leave"
	"github.com/cha0jun/leavey/internal/messaging/kafka"
	"github.com/cha0jun/leavey/internal/shared/connection"
	"github.com/cha0jun/leavey/internal/shared/counter"
	"github.com/cha0jun/leavey/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// infra holds the connections shared by every entry point. Fields are nil
// when the entry point did not ask for them.
type infra struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	rdb    *redis.Client
	writer *kafkago.Writer
}

func (i *infra) Close() {
	if i.writer != nil {
		_ = i.writer.Close()
	}
	if i.rdb != nil {
		_ = i.rdb.Close()
	}
	if i.sqlDB != nil {
		_ = i.sqlDB.Close()
	}
}

// messageWriter hides a nil *kafkago.Writer behind a nil interface so
// vendorsync.New can tell it is missing.
func (i *infra) messageWriter() kafka.MessageWriter {
	if i.writer == nil {
		return nil
	}
	return i.writer
}

func connect(cfg config.Config, withRedis, withKafka bool) (*infra, error) {
	gormDB, err := connection.ConnectGORMWithRetry(cfg.DB)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	in := &infra{gormDB: gormDB, sqlDB: sqlDB}

	if withRedis {
		in.rdb, err = connection.ConnectRedisWithRetry(cfg.Redis)
		if err != nil {
			in.Close()
			return nil, err
		}
	}

	if withKafka && cfg.Kafka.Broker != "" {
		in.writer, err = connection.ConnectKafkaWithRetry(cfg.Kafka)
		if err != nil {
			in.Close()
			return nil, err
		}
	}
	return in, nil
}

// migrate creates the tables the API owns. Production deployments run the
// same models, so a fresh database is usable without a separate tool.
func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&user.User{},
		&category.LeaveCategory{},
		&leave.LeaveRequest{},
		&audit.AuditLog{},
		&counter.Counter{},
		&kafka.OutboxEvent{},
		&document.Document{},
	)
}

// BuildApp connects the infrastructure, migrates the schema and mounts every
// module on router. The returned func releases the connections.
func BuildApp(router *gin.Engine, cfg config.Config, logger *zap.Logger) (func(), error) {
	in, err := connect(cfg, true, true)
	if err != nil {
		return nil, err
	}
	logger.Info("infrastructure connected",
		zap.Bool("kafka", in.writer != nil),
		zap.String("sync_driver", cfg.Sync.Driver),
		zap.String("upload_driver", cfg.Upload.Driver),
	)

	if err := migrate(in.gormDB); err != nil {
		in.Close()
		return nil, errors.Join(errors.New("auto migrate failed"), err)
	}

	if err := registerModules(router, cfg, in, logger); err != nil {
		in.Close()
		return nil, err
	}
	return in.Close, nil
}
