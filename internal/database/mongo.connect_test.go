// Package database - Test lớp kết nối MongoDB.
package database

import (
	"testing"

	"github.com/EldarGGG/nexus-back/config"
)

func TestConnect_RequiresConnectionURI(t *testing.T) {
	_, err := Connect(&config.Configuration{MongoDB_DBName: "nexus"})
	if err == nil {
		t.Fatal("Thiếu connection URI thì Connect phải trả về lỗi")
	}
}

func TestDisconnect_NilClient(t *testing.T) {
	if err := Disconnect(nil); err != nil {
		t.Fatalf("Disconnect với client nil phải trả về nil, nhận được %v", err)
	}
}
