package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	ttr "github.com/okian/boardscore/internal/domain/tickettoride"
)

func newTestStore(t *testing.T, opts ...Option) *MemoryStore {
	t.Helper()
	store, err := NewMemoryStore(opts...)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func players(names ...string) []ttr.PlayerInfo {
	out := make([]ttr.PlayerInfo, len(names))
	for i, name := range names {
		out[i] = ttr.NewPlayerInfo()
		out[i].Name = name
	}
	return out
}

func TestMemoryStore_Lifecycle(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		ctx := context.Background()
		fixed := time.Date(2025, 6, 14, 11, 2, 0, 0, time.UTC)
		ids := 0
		store := newTestStore(t,
			WithClock(func() time.Time { return fixed }),
			WithIDGenerator(func() string { ids++; return fmt.Sprintf("sheet-%d", ids) }),
		)

		So(store.Count(ctx), ShouldEqual, 0)

		Convey("When a sheet is created", func() {
			sheet, err := store.Create(ctx, players("Ada", "Grace"))

			Convey("Then it gets an id and timestamps", func() {
				So(err, ShouldBeNil)
				So(sheet.ID, ShouldEqual, "sheet-1")
				So(sheet.CreatedAt, ShouldEqual, fixed)
				So(sheet.UpdatedAt, ShouldEqual, fixed)
				So(sheet.Players, ShouldHaveLength, 2)
				So(store.Count(ctx), ShouldEqual, 1)
			})

			Convey("Then Get returns an independent copy", func() {
				got, err := store.Get(ctx, sheet.ID)
				So(err, ShouldBeNil)
				So(got.Players[0].Name, ShouldEqual, "Ada")

				got.Players[0].Name = "changed"
				got.Players[0].CompletedDestinations = append(got.Players[0].CompletedDestinations, 9)

				again, err := store.Get(ctx, sheet.ID)
				So(err, ShouldBeNil)
				So(again.Players[0].Name, ShouldEqual, "Ada")
				So(again.Players[0].CompletedDestinations, ShouldBeEmpty)
			})

			Convey("Then Update applies the change and keeps CreatedAt", func() {
				later := fixed.Add(time.Minute)
				store.now = func() time.Time { return later }

				updated, err := store.Update(ctx, sheet.ID, func(s *Sheet) error {
					s.Players[1].LongestPath = 12
					s.ID = "ignored"
					return nil
				})
				So(err, ShouldBeNil)
				So(updated.ID, ShouldEqual, sheet.ID)
				So(updated.CreatedAt, ShouldEqual, fixed)
				So(updated.UpdatedAt, ShouldEqual, later)

				got, _ := store.Get(ctx, sheet.ID)
				So(got.Players[1].LongestPath, ShouldEqual, 12)
			})

			Convey("Then a failing Update leaves the sheet untouched", func() {
				boom := errors.New("boom")
				_, err := store.Update(ctx, sheet.ID, func(s *Sheet) error {
					s.Players[0].Name = "partial"
					return boom
				})
				So(errors.Is(err, boom), ShouldBeTrue)

				got, _ := store.Get(ctx, sheet.ID)
				So(got.Players[0].Name, ShouldEqual, "Ada")
			})

			Convey("Then Delete removes it", func() {
				So(store.Delete(ctx, sheet.ID), ShouldBeNil)
				_, err := store.Get(ctx, sheet.ID)
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
				So(errors.Is(store.Delete(ctx, sheet.ID), ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When a sheet has no players", func() {
			_, err := store.Create(ctx, nil)

			Convey("Then it is rejected", func() {
				So(errors.Is(err, ErrNoPlayers), ShouldBeTrue)
				So(store.Count(ctx), ShouldEqual, 0)
			})
		})

		Convey("When an unknown id is requested", func() {
			_, getErr := store.Get(ctx, "missing")
			_, updErr := store.Update(ctx, "missing", func(*Sheet) error { return nil })

			Convey("Then ErrNotFound is returned", func() {
				So(errors.Is(getErr, ErrNotFound), ShouldBeTrue)
				So(errors.Is(updErr, ErrNotFound), ShouldBeTrue)
			})
		})
	})
}

func TestMemoryStore_ConcurrentUpdates(t *testing.T) {
	Convey("Given a sheet updated from many goroutines", t, func() {
		ctx := context.Background()
		store := newTestStore(t, WithTTL(0))
		sheet, err := store.Create(ctx, players("Ada"))
		So(err, ShouldBeNil)

		const workers = 50
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = store.Update(ctx, sheet.ID, func(s *Sheet) error {
					s.Players[0].RouteCounts[0]++
					return nil
				})
			}()
		}
		wg.Wait()

		Convey("Then no update is lost", func() {
			got, err := store.Get(ctx, sheet.ID)
			So(err, ShouldBeNil)
			So(got.Players[0].RouteCounts[0], ShouldEqual, workers)
		})
	})
}

func TestMemoryStore_Options(t *testing.T) {
	Convey("Given store options", t, func() {
		store := newTestStore(t, WithCapacity(-1), WithTTL(-time.Second), WithClock(nil), WithIDGenerator(nil))

		Convey("Then invalid values keep the defaults", func() {
			So(store.capacity, ShouldEqual, defaultCapacity)
			So(store.ttl, ShouldEqual, defaultTTL)
			So(store.now, ShouldNotBeNil)
			So(store.newID(), ShouldNotBeEmpty)
		})
	})
}
