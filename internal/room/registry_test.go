package room

import (
	"fmt"
	"sync"
	"testing"
)

func TestRegistryGetOrCreate(t *testing.T) {
	reg := NewRegistry()

	if _, ok := reg.Get("abc"); ok {
		t.Fatal("Get on empty registry returned a room")
	}
	r := reg.GetOrCreate("abc")
	if r == nil || r.Code != "abc" {
		t.Fatalf("GetOrCreate returned %+v", r)
	}
	if r.turn != White {
		t.Errorf("fresh room turn = %s, want white", r.turn)
	}
	if again := reg.GetOrCreate("abc"); again != r {
		t.Error("GetOrCreate created a second room for the same code")
	}

	reg.Remove("abc")
	if _, ok := reg.Get("abc"); ok {
		t.Error("room still present after Remove")
	}
}

func TestRegistryIndependentRooms(t *testing.T) {
	reg := NewRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			code := fmt.Sprintf("room-%d", i)
			reg.GetOrCreate(code)
		}(i)
	}
	wg.Wait()

	if reg.Len() != 20 {
		t.Errorf("rooms = %d, want 20", reg.Len())
	}
}
