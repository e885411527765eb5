// Package registry cung cấp implementation của registry pattern với generic type.
// Package này cho phép quản lý các singleton instances trong ứng dụng một cách thread-safe.
// Sử dụng generic type để có thể tái sử dụng cho nhiều loại đối tượng khác nhau.
package registry

import (
	"fmt"
	"sync"

	"github.com/EldarGGG/nexus-back/internal/common"
)

// Registry là một thread-safe generic registry pattern implementation.
// Type parameter T cho phép registry quản lý bất kỳ loại object nào.
// Thread-safety được đảm bảo thông qua sync.RWMutex.
//
// Example:
//
//	// Tạo registry cho kiểu string
//	strRegistry := NewRegistry[string]()
//
//	// Đăng ký một item
//	strRegistry.Register("key", "value")
//
//	// Lấy item
//	if value, exists := strRegistry.Get("key"); exists {
//	    fmt.Println(value)
//	}
type Registry[T any] struct {
	items map[string]T // Map lưu trữ các items theo key
	mu    sync.RWMutex // Mutex để đảm bảo thread-safety
}

// NewRegistry tạo và trả về một registry mới.
// Generic type T xác định loại items mà registry sẽ quản lý.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{
		items: make(map[string]T),
	}
}

// Register đăng ký một item mới vào registry.
// Nếu item với name đã tồn tại, nó sẽ bị ghi đè.
//
// Returns:
//   - isNew: true nếu là item mới, false nếu ghi đè item cũ
//   - err: Trả về lỗi nếu name rỗng
//
// Thread-safety: Safe for concurrent use
func (r *Registry[T]) Register(name string, item T) (isNew bool, err error) {
	if name == "" {
		return false, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	r.items[name] = item
	return !exists, nil
}

// Get lấy item theo tên.
// Trả về item và một boolean cho biết item có tồn tại hay không.
//
// Thread-safety: Safe for concurrent use
func (r *Registry[T]) Get(name string) (item T, exists bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, exists = r.items[name]
	return item, exists
}

// GetOrCreate lấy item theo tên, nếu chưa tồn tại thì tạo mới bằng factory.
// Factory chỉ được gọi khi item chưa tồn tại.
//
// Thread-safety: Safe for concurrent use
func (r *Registry[T]) GetOrCreate(name string, factory func() T) (T, error) {
	var zero T
	if name == "" {
		return zero, fmt.Errorf("name cannot be empty: %w", common.ErrRequiredField)
	}

	// Thử đọc trước với RLock
	r.mu.RLock()
	if item, exists := r.items[name]; exists {
		r.mu.RUnlock()
		return item, nil
	}
	r.mu.RUnlock()

	// Không có, lock ghi và kiểm tra lại (tránh race giữa RUnlock và Lock)
	r.mu.Lock()
	defer r.mu.Unlock()
	if item, exists := r.items[name]; exists {
		return item, nil
	}
	item := factory()
	r.items[name] = item
	return item, nil
}

// Names trả về danh sách tên của tất cả items đã đăng ký.
//
// Thread-safety: Safe for concurrent use
func (r *Registry[T]) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.items))
	for name := range r.items {
		names = append(names, name)
	}
	return names
}

// Remove xóa item theo tên. Trả về true nếu item tồn tại và đã bị xóa.
//
// Thread-safety: Safe for concurrent use
func (r *Registry[T]) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.items[name]
	delete(r.items, name)
	return exists
}

// Clear xóa tất cả items trong registry.
//
// Thread-safety: Safe for concurrent use
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = make(map[string]T)
}
