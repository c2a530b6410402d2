package changelog

import (
	"testing"
	"time"

	"github.com/gitscribe/gitscribe/internal/commit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func release(id, version string, at time.Time) commit.Record {
	return commit.Record{
		ID:        id,
		Author:    "bot",
		Message:   commit.DefaultReleasePrefix + version,
		Timestamp: at,
		Category:  commit.Release,
	}
}

func change(id string, cat commit.Category, at time.Time) commit.Record {
	return commit.Record{
		ID:        id,
		Author:    "dev",
		Message:   "feat: " + id,
		Timestamp: at,
		Category:  cat,
	}
}

func changeIDs(r Release) []string {
	ids := make([]string, 0, len(r.Changes))
	for _, c := range r.Changes {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestBucket_PendingReleaseScenario(t *testing.T) {
	now := day(2026, 10, 18)
	records := []commit.Record{
		release("r1", "1.0.0", day(2024, 1, 1)),
		change("f1", commit.Feature, day(2023, 12, 15)),
		release(commit.PendingID, "1.1.0", now),
	}

	g, err := Bucket(records)
	require.NoError(t, err)

	assert.Equal(t, []string{"1.1.0", "1.0.0"}, g.Versions())

	pending, err := g.Get("1.1.0")
	require.NoError(t, err)
	assert.True(t, pending.Pending)
	assert.Empty(t, pending.Changes)

	shipped, err := g.Get("1.0.0")
	require.NoError(t, err)
	assert.False(t, shipped.Pending)
	assert.Equal(t, []string{"f1"}, changeIDs(shipped))
}

func TestBucket_NearestFutureAssignment(t *testing.T) {
	records := []commit.Record{
		change("a", commit.Feature, day(2024, 1, 5)),
		release("r3", "3.0.0", day(2024, 3, 1)),
		change("b", commit.Fix, day(2024, 2, 10)),
		release("r1", "1.0.0", day(2024, 1, 1)),
		change("c", commit.Feature, day(2023, 6, 1)),
		release("r2", "2.0.0", day(2024, 2, 1)),
		change("d", commit.Fix, day(2024, 2, 1)),
	}

	g, err := Bucket(records)
	require.NoError(t, err)

	assert.Equal(t, []string{"3.0.0", "2.0.0", "1.0.0"}, g.Versions())

	r3, _ := g.Get("3.0.0")
	r2, _ := g.Get("2.0.0")
	r1, _ := g.Get("1.0.0")
	assert.Equal(t, []string{"b"}, changeIDs(r3))
	assert.Equal(t, []string{"a", "d"}, changeIDs(r2), "a change at a release's exact timestamp ships in it")
	assert.Equal(t, []string{"c"}, changeIDs(r1))
}

func TestBucket_EveryReleaseKeptEvenWhenEmpty(t *testing.T) {
	records := []commit.Record{
		release("r1", "0.1.0", day(2024, 1, 1)),
		release("r2", "0.2.0", day(2024, 2, 1)),
		release("r3", "0.3.0", day(2024, 3, 1)),
		change("x", commit.Feature, day(2024, 2, 15)),
	}

	g, err := Bucket(records)
	require.NoError(t, err)

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, 1, g.ChangeCount())
	for _, v := range []string{"0.1.0", "0.2.0"} {
		r, err := g.Get(v)
		require.NoError(t, err)
		assert.True(t, r.IsEmpty(), v)
	}
}

func TestBucket_TiesKeepOriginalOrder(t *testing.T) {
	same := day(2024, 5, 5)
	records := []commit.Record{
		release("first", "1.0.0", same),
		release("second", "1.0.1", same),
		change("c", commit.Fix, day(2024, 5, 1)),
	}

	g, err := Bucket(records)
	require.NoError(t, err)

	assert.Equal(t, []string{"1.0.0", "1.0.1"}, g.Versions())
	first, _ := g.Get("1.0.0")
	assert.Equal(t, []string{"c"}, changeIDs(first))
}

func TestBucket_IgnoresUnclassified(t *testing.T) {
	records := []commit.Record{
		release("r1", "1.0.0", day(2024, 1, 1)),
		change("u", commit.Unclassified, day(2023, 1, 1)),
		change("f", commit.Feature, day(2023, 1, 2)),
	}

	g, err := Bucket(records)
	require.NoError(t, err)

	assert.Equal(t, 1, g.ChangeCount())
	for _, r := range g.Releases() {
		for _, c := range r.Changes {
			assert.NotEqual(t, commit.Unclassified, c.Category)
		}
	}
}

func TestBucket_MissingVersionSuffix(t *testing.T) {
	broken := release("bad", "", day(2024, 1, 1))
	records := []commit.Record{
		change("f", commit.Feature, day(2023, 1, 1)),
		broken,
		release(commit.PendingID, "1.0.0", day(2026, 1, 1)),
	}

	g, err := Bucket(records)
	require.Error(t, err)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, commit.ErrMissingVersionSuffix)
}

func TestBucket_ChangeNewerThanEveryRelease(t *testing.T) {
	records := []commit.Record{
		release(commit.PendingID, "1.0.0", day(2024, 1, 1)),
		change("skewed", commit.Feature, day(2024, 1, 2)),
	}

	g, err := Bucket(records)
	require.Error(t, err)
	assert.Nil(t, g)
	assert.ErrorIs(t, err, ErrInconsistentVersionState)
	assert.Contains(t, err.Error(), "skewed")
}

func TestBucket_DuplicateVersionCollapsesToNewest(t *testing.T) {
	records := []commit.Record{
		release("old", "1.0.0", day(2024, 1, 1)),
		release(commit.PendingID, "1.0.0", day(2024, 6, 1)),
		change("a", commit.Feature, day(2023, 12, 1)),
		change("b", commit.Feature, day(2024, 3, 1)),
	}

	g, err := Bucket(records)
	require.NoError(t, err)

	assert.Equal(t, []string{"1.0.0"}, g.Versions())
	r, _ := g.Get("1.0.0")
	assert.True(t, r.Pending)
	assert.Equal(t, []string{"a", "b"}, changeIDs(r))
}
