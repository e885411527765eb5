package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/EldarGGG/nexus-back/config"
	"github.com/EldarGGG/nexus-back/internal/logger"
)

// Connect mở kết nối đến MongoDB theo cấu hình server và ping để xác nhận
// kết nối sống trước khi trả về client. Pool size và connect timeout lấy từ
// config để môi trường khác nhau (dev/staging/prod) tự điều chỉnh được.
func Connect(c *config.Configuration) (*mongo.Client, error) {
	if c.MongoDB_ConnectionURI == "" {
		return nil, fmt.Errorf("thiếu MONGODB_CONNECTION_URI trong cấu hình")
	}

	connectTimeout := time.Duration(c.MongoDB_ConnectTimeout) * time.Second
	if connectTimeout <= 0 {
		connectTimeout = 5 * time.Second
	}

	clientOptions := options.Client().ApplyURI(c.MongoDB_ConnectionURI).
		SetMaxPoolSize(c.MongoDB_MaxPoolSize).
		SetMinPoolSize(c.MongoDB_MinPoolSize).
		SetConnectTimeout(connectTimeout).
		SetSocketTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout*2)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("không kết nối được MongoDB: %w", err)
	}

	// Connect trả về ngay cả khi server chưa chạy, phải ping mới biết kết nối sống
	ctxPing, cancelPing := context.WithTimeout(context.Background(), connectTimeout)
	defer cancelPing()
	if err := client.Ping(ctxPing, nil); err != nil {
		return nil, fmt.Errorf("ping MongoDB thất bại: %w", err)
	}

	logger.GetAppLogger().
		WithField("database", c.MongoDB_DBName).
		WithField("maxPoolSize", c.MongoDB_MaxPoolSize).
		Info("Đã kết nối MongoDB")
	return client, nil
}

// Disconnect đóng toàn bộ connection pool của client
func Disconnect(client *mongo.Client) error {
	if client == nil {
		return nil
	}
	if err := client.Disconnect(context.TODO()); err != nil {
		logger.GetAppLogger().WithError(err).Error("Đóng kết nối MongoDB thất bại")
		return err
	}
	logger.GetAppLogger().Info("Đã đóng kết nối MongoDB")
	return nil
}
