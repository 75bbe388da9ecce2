package integration

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/webdekho/schoolctl/pkg/forms"
	"github.com/webdekho/schoolctl/pkg/types"
)

func TestListIsCachedUntilMutation(t *testing.T) {
	api := newFakeSchoolAPI()
	m := setupStack(t, api, t.TempDir())
	ctx := context.Background()
	q := types.ListQuery{Page: 1, PageSize: 25}

	page, err := m.Query(ctx, types.ResourceGrades, q)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)

	// Repeated identical queries come from the cache.
	_, err = m.Query(ctx, types.ResourceGrades, q)
	require.NoError(t, err)
	assert.Equal(t, 1, api.count("GET /grades"))

	// A create invalidates and the next list refetches with the new row.
	_, err = m.Create(ctx, types.ResourceGrades, forms.GradeDraft{Name: "Grade 3", SortOrder: 3})
	require.NoError(t, err)

	page, err = m.Query(ctx, types.ResourceGrades, q)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
	assert.Equal(t, 2, api.count("GET /grades"))

	decoded, err := types.DecodePage[types.Grade](page)
	require.NoError(t, err)
	assert.Equal(t, "Grade 3", decoded.Items[2].Name)
}

func TestMutationVisibleToNextInvocation(t *testing.T) {
	api := newFakeSchoolAPI()
	cacheDir := t.TempDir()
	ctx := context.Background()
	q := types.ListQuery{Page: 1, PageSize: 25}

	// First invocation warms the cache, then mutates.
	first := setupStack(t, api, cacheDir)
	_, err := first.Query(ctx, types.ResourceGrades, q)
	require.NoError(t, err)
	_, err = first.Create(ctx, types.ResourceGrades, forms.GradeDraft{Name: "Grade 4", SortOrder: 4})
	require.NoError(t, err)

	// A separate invocation sharing the cache dir must not serve the
	// pre-mutation page.
	second := setupStack(t, api, cacheDir)
	page, err := second.Query(ctx, types.ResourceGrades, q)
	require.NoError(t, err)
	assert.Equal(t, 3, page.Total)
}

func TestGuardedDeleteNeverReachesServer(t *testing.T) {
	api := newFakeSchoolAPI()
	m := setupStack(t, api, t.TempDir())
	ctx := context.Background()

	page, err := m.Query(ctx, types.ResourceGrades, types.ListQuery{Page: 1, PageSize: 25})
	require.NoError(t, err)
	decoded, err := types.DecodePage[types.Grade](page)
	require.NoError(t, err)

	var withDivisions types.Grade
	for _, g := range decoded.Items {
		if g.HasDivisions {
			withDivisions = g
		}
	}
	require.NotZero(t, withDivisions.ID, "fixture must contain a grade with divisions")

	err = m.Delete(ctx, types.ResourceGrades, "2", withDivisions.CanDelete)
	require.ErrorIs(t, err, types.ErrRecordInUse)
	assert.Zero(t, api.count("DELETE /grades/2"))

	// The unguarded grade deletes fine.
	err = m.Delete(ctx, types.ResourceGrades, "1", types.Grade{ID: 1}.CanDelete)
	require.NoError(t, err)

	page, err = m.Query(ctx, types.ResourceGrades, types.ListQuery{Page: 1, PageSize: 25})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Total)
}

func TestFormSubmitDrivesCreate(t *testing.T) {
	api := newFakeSchoolAPI()
	m := setupStack(t, api, t.TempDir())
	ctx := context.Background()

	form := forms.New[forms.GradeDraft]()

	// Invalid draft is blocked before the network.
	_, err := form.Submit(ctx, func(ctx context.Context, d forms.GradeDraft) (json.RawMessage, error) {
		return m.Create(ctx, types.ResourceGrades, d)
	})
	require.ErrorIs(t, err, forms.ErrInvalidDraft)
	assert.Zero(t, api.count("POST /grades"))
	assert.Contains(t, form.FieldErrors(), "name")

	// Corrected draft goes through.
	form.SetField("name", func(d *forms.GradeDraft) { d.Name = "Grade 5" })
	raw, err := form.Submit(ctx, func(ctx context.Context, d forms.GradeDraft) (json.RawMessage, error) {
		return m.Create(ctx, types.ResourceGrades, d)
	})
	require.NoError(t, err)

	created, err := types.DecodeRecord(types.ResourceGrades, raw)
	require.NoError(t, err)
	assert.Equal(t, "Grade 5", created.(*types.Grade).Name)
	assert.Equal(t, 1, api.count("POST /grades"))
}

func TestSetDefaultYearTransition(t *testing.T) {
	api := newFakeSchoolAPI()
	m := setupStack(t, api, t.TempDir())
	ctx := context.Background()
	q := types.ListQuery{Page: 1, PageSize: 25}

	_, err := m.Query(ctx, types.ResourceAcademicYears, q)
	require.NoError(t, err)

	_, err = m.Transition(ctx, types.TransitionSetDefaultYear, "2", nil)
	require.NoError(t, err)

	page, err := m.Query(ctx, types.ResourceAcademicYears, q)
	require.NoError(t, err)
	years, err := types.DecodePage[types.AcademicYear](page)
	require.NoError(t, err)

	defaults := 0
	for _, y := range years.Items {
		if y.IsDefault {
			defaults++
			assert.EqualValues(t, 2, y.ID)
		}
	}
	assert.Equal(t, 1, defaults, "exactly one default year")
	assert.Equal(t, 2, api.count("GET /academic_years"))
}

func TestExpiredTokenSurfacesUnauthorized(t *testing.T) {
	api := newFakeSchoolAPI()

	badClient, err := setupClientWithToken(t, api, "stale-token")
	require.NoError(t, err)

	_, err = badClient.Get(context.Background(), types.ResourceGrades, "1")
	require.ErrorIs(t, err, types.ErrUnauthorized)
}
