package registry

import (
	"sync"
	"testing"
)

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("counter", 1)
	if err != nil {
		t.Fatalf("Register trả về lỗi: %v", err)
	}
	if !isNew {
		t.Error("Register lần đầu phải trả về isNew = true")
	}

	isNew, err = r.Register("counter", 2)
	if err != nil {
		t.Fatalf("Register trả về lỗi: %v", err)
	}
	if isNew {
		t.Error("Register ghi đè phải trả về isNew = false")
	}

	value, exists := r.Get("counter")
	if !exists {
		t.Fatal("Không tìm thấy item đã đăng ký")
	}
	if value != 2 {
		t.Errorf("Giá trị sau khi ghi đè phải là 2, nhận được %d", value)
	}

	if _, err := r.Register("", 3); err == nil {
		t.Error("Register với name rỗng phải trả về lỗi")
	}
}

func TestRegistryGetOrCreateConcurrent(t *testing.T) {
	r := NewRegistry[*int]()

	var created int
	var mu sync.Mutex
	factory := func() *int {
		mu.Lock()
		created++
		mu.Unlock()
		v := 42
		return &v
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := r.GetOrCreate("shared", factory); err != nil {
				t.Errorf("GetOrCreate trả về lỗi: %v", err)
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("Factory phải được gọi đúng 1 lần, đã gọi %d lần", created)
	}
}
