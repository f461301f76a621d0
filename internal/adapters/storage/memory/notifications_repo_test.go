package memory

import (
	"context"
	"sync"
	"testing"

	"equimanage-server/internal/domain/compliance"
	"equimanage-server/internal/domain/horses"
	"equimanage-server/internal/domain/notifications"
)

func TestInsertVaccIfAbsent_ConcurrentSingleWinner(t *testing.T) {
	repo := NewNotificationRepo()
	k := notifications.VaccKey{
		OwnerID:  "owner-1",
		HorseID:  "horse-1",
		Type:     horses.CategoryInfluenza,
		Sequence: horses.SequenceV2,
	}

	const n = 50
	var wg sync.WaitGroup
	var mu sync.Mutex
	inserted := 0

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := repo.InsertVaccIfAbsent(context.Background(), k)
			if err != nil {
				t.Errorf("InsertVaccIfAbsent: %v", err)
				return
			}
			if ok {
				mu.Lock()
				inserted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if inserted != 1 {
		t.Fatalf("inserted = %d, quiere exactamente 1 ganador", inserted)
	}
}

func TestInsertHoofIfAbsent_EscalationIsNewKey(t *testing.T) {
	repo := NewNotificationRepo()
	ctx := context.Background()

	yellow := notifications.HoofKey{OwnerID: "o", HorseID: "h", Status: compliance.StatusYellow}
	red := notifications.HoofKey{OwnerID: "o", HorseID: "h", Status: compliance.StatusRed}

	if ok, _ := repo.InsertHoofIfAbsent(ctx, yellow); !ok {
		t.Fatal("primera inserción yellow debería ganar")
	}
	if ok, _ := repo.InsertHoofIfAbsent(ctx, yellow); ok {
		t.Fatal("repetición yellow no debería insertar")
	}
	if ok, _ := repo.InsertHoofIfAbsent(ctx, red); !ok {
		t.Fatal("escalada a red es clave nueva y debería insertar")
	}
}
