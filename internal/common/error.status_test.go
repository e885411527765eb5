package common

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestErrorIs(t *testing.T) {
	err := NewError(ErrCodeChannelSend, "Gửi tin nhắn qua platform API thất bại", StatusBadGateway, nil)

	assert.True(t, errors.Is(err, ErrChannelSendFailed), "Error cùng code và message phải match qua errors.Is")
	assert.False(t, errors.Is(err, ErrNotFound), "Error khác code không được match")
	assert.False(t, errors.Is(err, nil), "So sánh với nil phải trả về false")
}

func TestConvertMongoError(t *testing.T) {
	assert.Nil(t, ConvertMongoError(nil), "nil phải giữ nguyên là nil")
	assert.Equal(t, ErrNotFound, ConvertMongoError(ErrNotFound), "ErrNotFound phải được giữ nguyên, không convert")

	duplicateErr := mongo.WriteException{
		WriteErrors: []mongo.WriteError{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
	assert.True(t, errors.Is(ConvertMongoError(duplicateErr), ErrMongoDuplicate),
		"Lỗi duplicate key phải convert thành ErrMongoDuplicate")

	converted := ConvertMongoError(errors.New("something unexpected"))
	var appErr *Error
	assert.True(t, errors.As(converted, &appErr), "Lỗi lạ phải được bọc thành *Error")
	assert.Equal(t, StatusInternalServerError, appErr.StatusCode)
}
