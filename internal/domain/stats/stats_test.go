package stats

import (
	"testing"
	"time"

	"alerte/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func report(mutate func(*entity.Report)) *entity.Report {
	r := &entity.Report{
		ID:            uuid.New(),
		CommuneID:     uuid.New(),
		ProblemTypeID: uuid.New(),
		Status:        entity.StatusPending,
		Priority:      entity.PriorityMedium,
		CreatedAt:     time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
	if mutate != nil {
		mutate(r)
	}

	return r
}

func TestCountByStatus(t *testing.T) {
	reports := []*entity.Report{
		report(func(r *entity.Report) { r.Status = entity.StatusPending }),
		report(func(r *entity.Report) { r.Status = entity.StatusPending }),
		report(func(r *entity.Report) { r.Status = entity.StatusResolved }),
	}

	counts := CountByStatus(reports)

	assert.Equal(t, 2, counts[entity.StatusPending])
	assert.Equal(t, 1, counts[entity.StatusResolved])

	// Every state is present even with zero hits, and the buckets sum to len.
	total := 0
	for _, s := range entity.AllStatuses() {
		count, ok := counts[s]
		assert.True(t, ok, string(s))
		total += count
	}
	assert.Equal(t, len(reports), total)
}

func TestCountByPriority(t *testing.T) {
	reports := []*entity.Report{
		report(func(r *entity.Report) { r.Priority = entity.PriorityHigh }),
		report(func(r *entity.Report) { r.Priority = entity.PriorityLow }),
	}

	counts := CountByPriority(reports)

	assert.Equal(t, 1, counts[entity.PriorityHigh])
	assert.Equal(t, 1, counts[entity.PriorityLow])
	assert.Equal(t, 0, counts[entity.PriorityCritical])
}

func TestTopCommunes(t *testing.T) {
	gombe := uuid.New()
	limete := uuid.New()
	ngaliema := uuid.New()
	names := map[uuid.UUID]string{gombe: "Gombe", limete: "Limete", ngaliema: "Ngaliema"}
	nameOf := func(id uuid.UUID) string { return names[id] }

	reports := []*entity.Report{
		report(func(r *entity.Report) { r.CommuneID = limete }),
		report(func(r *entity.Report) { r.CommuneID = limete }),
		report(func(r *entity.Report) { r.CommuneID = gombe }),
		report(func(r *entity.Report) { r.CommuneID = ngaliema }),
	}

	t.Run("orders by count then name", func(t *testing.T) {
		top := TopCommunes(reports, 0, nameOf)

		require.Len(t, top, 3)
		assert.Equal(t, NamedCount{ID: limete, Name: "Limete", Count: 2}, top[0])
		// Gombe and Ngaliema tie on count, alphabetical order breaks the tie.
		assert.Equal(t, "Gombe", top[1].Name)
		assert.Equal(t, "Ngaliema", top[2].Name)
	})

	t.Run("trims to n", func(t *testing.T) {
		top := TopCommunes(reports, 2, nameOf)

		require.Len(t, top, 2)
		assert.Equal(t, "Limete", top[0].Name)
	})

	t.Run("nil resolver leaves names empty", func(t *testing.T) {
		top := TopCommunes(reports, 1, nil)

		require.Len(t, top, 1)
		assert.Empty(t, top[0].Name)
		assert.Equal(t, limete, top[0].ID)
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, TopCommunes(nil, 5, nameOf))
	})
}

func TestCountByMonth(t *testing.T) {
	at := func(year int, month time.Month) func(*entity.Report) {
		return func(r *entity.Report) {
			r.CreatedAt = time.Date(year, month, 5, 8, 0, 0, 0, time.UTC)
		}
	}

	reports := []*entity.Report{
		report(at(2026, time.March)),
		report(at(2026, time.January)),
		report(at(2026, time.March)),
		report(at(2025, time.December)),
	}

	months := CountByMonth(reports)

	require.Len(t, months, 3)
	assert.Equal(t, MonthCount{Month: "2025-12", Count: 1}, months[0])
	assert.Equal(t, MonthCount{Month: "2026-01", Count: 1}, months[1])
	assert.Equal(t, MonthCount{Month: "2026-03", Count: 2}, months[2])
}

func TestCompute(t *testing.T) {
	communeID := uuid.New()
	problemTypeID := uuid.New()
	reports := []*entity.Report{
		report(func(r *entity.Report) {
			r.CommuneID = communeID
			r.ProblemTypeID = problemTypeID
			r.Status = entity.StatusInProgress
		}),
		report(func(r *entity.Report) {
			r.CommuneID = communeID
			r.ProblemTypeID = problemTypeID
		}),
	}

	overview := Compute(reports, 5,
		func(uuid.UUID) string { return "Gombe" },
		func(uuid.UUID) string { return "Voirie" },
	)

	assert.Equal(t, 2, overview.Total)
	assert.Equal(t, 1, overview.ByStatus[entity.StatusInProgress])
	assert.Equal(t, 1, overview.ByStatus[entity.StatusPending])
	require.Len(t, overview.TopCommunes, 1)
	assert.Equal(t, "Gombe", overview.TopCommunes[0].Name)
	require.Len(t, overview.TopProblemTypes, 1)
	assert.Equal(t, "Voirie", overview.TopProblemTypes[0].Name)
	require.Len(t, overview.ByMonth, 1)
	assert.Equal(t, 2, overview.ByMonth[0].Count)
}
