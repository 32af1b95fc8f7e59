package engine

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thermwatch/thermwatch/internal/api"
	"github.com/thermwatch/thermwatch/internal/logger"
)

func snapshotWith(ids ...string) *api.Snapshot {
	snap := &api.Snapshot{
		Statistics: api.Statistics{TotalDevices: len(ids), ActiveDevices: len(ids)},
	}
	for _, id := range ids {
		snap.Devices = append(snap.Devices, api.Device{
			IPAddress: id,
			Status:    api.StatusActive,
			LastSeen:  time.Now(),
		})
	}
	return snap
}

func TestEngine_FirstCycleBuildsEverything(t *testing.T) {
	f := newFakeFactory()
	e := New(f.create, ThemeDark, logger.Noop())

	assert.False(t, e.FirstRebuildDone())

	plan := e.ApplySnapshot(snapshotWith("10.0.0.1", "10.0.0.2"))

	assert.True(t, plan.FullRebuild)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, plan.ToCreate)
	assert.True(t, e.FirstRebuildDone())
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, e.RenderedIDs())

	m := e.Manager()
	assert.True(t, m.Live(DeviceKey("10.0.0.1")))
	assert.True(t, m.Live(DeviceKey("10.0.0.2")))
	assert.True(t, m.Live(KeyStats))
	assert.True(t, m.Live(KeyRoster))
	assert.True(t, m.Live(KeyAggregate))
}

func TestEngine_UnchangedSetUpdatesInPlace(t *testing.T) {
	f := newFakeFactory()
	e := New(f.create, ThemeDark, logger.Noop())

	e.ApplySnapshot(snapshotWith("10.0.0.1"))
	first := f.visuals[DeviceKey("10.0.0.1")]

	// Same device, different status: no destroy or create may occur.
	snap := snapshotWith("10.0.0.1")
	snap.Devices[0].Status = api.StatusInactive
	plan := e.ApplySnapshot(snap)

	assert.False(t, plan.FullRebuild)
	assert.Equal(t, []string{"10.0.0.1"}, plan.ToUpdate)
	assert.False(t, first.destroyed)
	assert.Equal(t, 1, f.built[DeviceKey("10.0.0.1")])

	// Roster visual received the new device slice.
	roster := f.visuals[KeyRoster]
	devices, ok := roster.data.([]api.Device)
	require.True(t, ok)
	assert.Equal(t, api.StatusInactive, devices[0].Status)
}

func TestEngine_MembershipChangeDestroysBeforeCreating(t *testing.T) {
	f := newFakeFactory()
	e := New(f.create, ThemeDark, logger.Noop())

	e.ApplySnapshot(snapshotWith("10.0.0.1"))
	f.ops = nil

	e.ApplySnapshot(snapshotWith("10.0.0.1", "10.0.0.2"))

	// 10.0.0.1 appears in both ToDestroy and ToCreate; its destroy must
	// complete before any create begins.
	var destroyAt, createAt int
	for i, op := range f.ops {
		switch op {
		case "destroy " + DeviceKey("10.0.0.1"):
			destroyAt = i
		case "create " + DeviceKey("10.0.0.1"):
			createAt = i
		}
	}
	assert.Less(t, destroyAt, createAt)
	assert.Equal(t, 2, f.built[DeviceKey("10.0.0.1")])
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, e.RenderedIDs())
}

func TestEngine_EmptySnapshotDestroysDevicesKeepsSingletons(t *testing.T) {
	f := newFakeFactory()
	e := New(f.create, ThemeDark, logger.Noop())

	e.ApplySnapshot(snapshotWith("10.0.0.1"))
	e.ApplySnapshot(snapshotWith())

	m := e.Manager()
	assert.False(t, m.Live(DeviceKey("10.0.0.1")))
	assert.True(t, m.Live(KeyStats))
	assert.True(t, m.Live(KeyRoster))
	assert.True(t, m.Live(KeyAggregate))
	assert.Empty(t, e.RenderedIDs())
	assert.True(t, e.FirstRebuildDone())
}

func TestEngine_FirstCycleFailureIsFatal(t *testing.T) {
	f := newFakeFactory()
	log := logger.NewBufferLogger()
	e := New(f.create, ThemeDark, log)

	fatal := e.HandleFailure(errors.New("connection refused"))

	assert.True(t, fatal)
	assert.Error(t, e.Err())
	assert.False(t, e.FirstRebuildDone())
	assert.True(t, log.HasLevel("error"))

	// A later success clears the error state.
	e.ApplySnapshot(snapshotWith("10.0.0.1"))
	assert.NoError(t, e.Err())
}

func TestEngine_StickyLastGoodState(t *testing.T) {
	f := newFakeFactory()
	log := logger.NewBufferLogger()
	e := New(f.create, ThemeDark, log)

	// S1 success, S2 failure, S3 success.
	e.ApplySnapshot(snapshotWith("10.0.0.1", "10.0.0.2"))

	fatal := e.HandleFailure(errors.New("gateway timeout"))
	assert.False(t, fatal)
	assert.NoError(t, e.Err())
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, e.RenderedIDs())
	assert.True(t, e.Manager().Live(DeviceKey("10.0.0.1")))
	require.NotNil(t, e.Snapshot())
	assert.Len(t, e.Snapshot().Devices, 2)
	assert.True(t, log.HasLevel("warn"))

	e.ApplySnapshot(snapshotWith("10.0.0.1"))
	assert.Equal(t, []string{"10.0.0.1"}, e.RenderedIDs())
}

func TestEngine_ApplySeriesChecksLiveness(t *testing.T) {
	f := newFakeFactory()
	e := New(f.create, ThemeDark, logger.Noop())

	e.ApplySnapshot(snapshotWith("10.0.0.1"))

	temp := 36.5
	readings := []api.Reading{{Timestamp: time.Now(), ContactTemp: &temp}}
	assert.True(t, e.ApplySeries("10.0.0.1", readings))

	series, ok := f.visuals[DeviceKey("10.0.0.1")].data.(DeviceSeries)
	require.True(t, ok)
	assert.Len(t, series.Contact, 1)
	assert.Empty(t, series.NonContact)

	// Device leaves the fleet; its late result must be discarded.
	e.ApplySnapshot(snapshotWith("10.0.0.2"))
	assert.False(t, e.ApplySeries("10.0.0.1", readings))
}

func TestEngine_SeriesFailureIsIsolated(t *testing.T) {
	f := newFakeFactory()
	log := logger.NewBufferLogger()
	e := New(f.create, ThemeDark, log)

	e.ApplySnapshot(snapshotWith("10.0.0.1", "10.0.0.2"))
	e.SeriesFailed("10.0.0.1", errors.New("404"))

	// Both visuals stay live; the failure is only logged.
	assert.True(t, e.Manager().Live(DeviceKey("10.0.0.1")))
	assert.True(t, e.Manager().Live(DeviceKey("10.0.0.2")))
	assert.True(t, log.HasLevel("warn"))
}

func TestEngine_SetThemeRestylesWithoutRebuild(t *testing.T) {
	f := newFakeFactory()
	e := New(f.create, ThemeDark, logger.Noop())

	e.ApplySnapshot(snapshotWith("10.0.0.1"))
	before := f.built[DeviceKey("10.0.0.1")]

	e.SetTheme(ThemeLight)

	assert.Equal(t, before, f.built[DeviceKey("10.0.0.1")])
	assert.Equal(t, ThemeLight, f.visuals[DeviceKey("10.0.0.1")].theme)
	assert.Equal(t, ThemeLight, f.visuals[KeyStats].theme)
}

func TestNewDeviceSeries(t *testing.T) {
	c1, n1 := 36.5, 35.8
	readings := []api.Reading{
		{Timestamp: time.Unix(100, 0), ContactTemp: &c1, NonContactTemp: &n1},
		{Timestamp: time.Unix(200, 0), ContactTemp: nil, NonContactTemp: &n1},
		{Timestamp: time.Unix(300, 0), ContactTemp: &c1, NonContactTemp: nil},
	}

	s := NewDeviceSeries(readings)

	require.Len(t, s.Contact, 2)
	require.Len(t, s.NonContact, 2)
	assert.Equal(t, time.Unix(100, 0), s.Contact[0].Timestamp)
	assert.Equal(t, time.Unix(300, 0), s.Contact[1].Timestamp)
	assert.Equal(t, time.Unix(200, 0), s.NonContact[1].Timestamp)
}

func TestNewDeviceSeries_Empty(t *testing.T) {
	s := NewDeviceSeries(nil)
	assert.Empty(t, s.Contact)
	assert.Empty(t, s.NonContact)
}
