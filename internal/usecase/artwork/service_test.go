package artwork

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/openmuse/gallery/domain"
)

type fakeRepo struct {
	artworks map[int64]domain.Artwork

	searchIDs     map[string][]int64
	searchErr     error
	deptIDs       map[int64][]int64
	deptErr       error
	departments   []domain.Department
	getByIDCalls  int
	getByIDsCalls int
	searchQueries []string
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		artworks:  make(map[int64]domain.Artwork),
		searchIDs: make(map[string][]int64),
		deptIDs:   make(map[int64][]int64),
	}
}

func (f *fakeRepo) addDisplayable(ids ...int64) {
	for _, id := range ids {
		f.artworks[id] = domain.Artwork{
			ObjectID:     id,
			Title:        fmt.Sprintf("Artwork %d", id),
			PrimaryImage: fmt.Sprintf("https://images.example.org/%d.jpg", id),
		}
	}
}

func (f *fakeRepo) GetByID(_ context.Context, id int64) (domain.Artwork, error) {
	f.getByIDCalls++
	a, ok := f.artworks[id]
	if !ok {
		return domain.Artwork{}, domain.ErrNotFound
	}
	return a, nil
}

func (f *fakeRepo) GetByIDs(ctx context.Context, ids []int64) ([]domain.Artwork, error) {
	f.getByIDsCalls++
	res := make([]domain.Artwork, 0, len(ids))
	for _, id := range ids {
		if a, err := f.GetByID(ctx, id); err == nil {
			res = append(res, a)
		}
	}
	return res, nil
}

func (f *fakeRepo) SearchIDs(_ context.Context, query string, _ bool) ([]int64, error) {
	f.searchQueries = append(f.searchQueries, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchIDs[query], nil
}

func (f *fakeRepo) ListDepartments(_ context.Context) ([]domain.Department, error) {
	return f.departments, nil
}

func (f *fakeRepo) ObjectIDsByDepartment(_ context.Context, departmentID int64) ([]int64, error) {
	if f.deptErr != nil {
		return nil, f.deptErr
	}
	return f.deptIDs[departmentID], nil
}

// newTestService pins the shuffle so candidate order is deterministic and
// removes the throttle so tests run instantly.
func newTestService(repo domain.ArtworkRepository) *Service {
	svc := NewService(repo, rate.NewLimiter(rate.Inf, 1))
	svc.shuffle = func([]int64) {}
	return svc
}

func ids(n int) []int64 {
	res := make([]int64, n)
	for i := range res {
		res[i] = int64(i + 1)
	}
	return res
}

func TestFetchRandom_ReturnsAtMostN(t *testing.T) {
	repo := newFakeRepo()
	repo.searchIDs[randomPoolQuery] = ids(20)
	repo.addDisplayable(ids(20)...)
	svc := newTestService(repo)

	res, err := svc.FetchRandom(context.Background(), 7)

	require.NoError(t, err)
	assert.Len(t, res, 7)
}

func TestFetchRandom_SkipsNonDisplayableAndMissing(t *testing.T) {
	repo := newFakeRepo()
	repo.searchIDs[randomPoolQuery] = ids(6)
	repo.addDisplayable(1, 3)
	// Id 5 resolves but has no image, so it is filtered out.
	repo.artworks[5] = domain.Artwork{ObjectID: 5, Title: "No Image"}
	svc := newTestService(repo)

	res, err := svc.FetchRandom(context.Background(), 10)

	require.NoError(t, err)
	require.Len(t, res, 2)
	for _, a := range res {
		assert.True(t, a.Displayable())
	}
}

func TestFetchRandom_DeduplicatesCandidates(t *testing.T) {
	repo := newFakeRepo()
	repo.searchIDs[randomPoolQuery] = []int64{1, 1, 2, 2, 1, 2}
	repo.addDisplayable(1, 2)
	svc := newTestService(repo)

	res, err := svc.FetchRandom(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, res, 2)
	assert.Equal(t, 2, repo.getByIDCalls)
}

func TestFetchRandom_EmptyPool(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	res, err := svc.FetchRandom(context.Background(), 10)

	assert.ErrorIs(t, err, domain.ErrNoArtworksFound)
	assert.Empty(t, res)
}

func TestFetchRandom_StopsFetchingOnceFull(t *testing.T) {
	repo := newFakeRepo()
	repo.searchIDs[randomPoolQuery] = ids(100)
	repo.addDisplayable(ids(100)...)
	svc := newTestService(repo)

	res, err := svc.FetchRandom(context.Background(), 5)

	require.NoError(t, err)
	assert.Len(t, res, 5)
	// One batch suffices when every candidate is displayable.
	assert.Equal(t, fetchBatchSize, repo.getByIDCalls)
}

func TestFetchRandom_ResolvesCandidatesThroughBatchLookup(t *testing.T) {
	repo := newFakeRepo()
	repo.searchIDs[randomPoolQuery] = ids(12)
	repo.addDisplayable(ids(12)...)
	svc := newTestService(repo)

	res, err := svc.FetchRandom(context.Background(), 10)

	require.NoError(t, err)
	assert.Len(t, res, 10)
	// Two batches of five fill the request; each is one batch lookup.
	assert.Equal(t, 2, repo.getByIDsCalls)
}

func TestSearch_FiltersByRelevance(t *testing.T) {
	repo := newFakeRepo()
	repo.searchIDs["van gogh"] = ids(3)
	repo.artworks[1] = domain.Artwork{
		ObjectID: 1, Title: "Self-Portrait", ArtistDisplayName: "Vincent van Gogh",
		PrimaryImage: "https://images.example.org/1.jpg",
	}
	repo.artworks[2] = domain.Artwork{
		ObjectID: 2, Title: "Unrelated Vase", ArtistDisplayName: "Unknown",
		PrimaryImage: "https://images.example.org/2.jpg",
	}
	repo.artworks[3] = domain.Artwork{
		ObjectID: 3, Title: "Wheat Field with Cypresses", ArtistDisplayName: "Vincent van Gogh",
		PrimaryImage: "https://images.example.org/3.jpg",
	}
	svc := newTestService(repo)

	res, err := svc.Search(context.Background(), "van gogh", 10)

	require.NoError(t, err)
	require.Len(t, res, 2)
	for _, a := range res {
		assert.Equal(t, "Vincent van Gogh", a.ArtistDisplayName)
	}
}

func TestSearch_NoMatchesIsNotAnError(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	res, err := svc.Search(context.Background(), "zzzz", 10)

	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestSearch_CapsCandidateIDs(t *testing.T) {
	repo := newFakeRepo()
	repo.searchIDs["painting"] = ids(500)
	repo.addDisplayable(ids(500)...)
	svc := newTestService(repo)

	_, err := svc.Search(context.Background(), "painting", 10)

	require.NoError(t, err)
	assert.LessOrEqual(t, repo.getByIDCalls, searchCandidateLimit)
}

func TestFetchByDepartment_DirectIDs(t *testing.T) {
	repo := newFakeRepo()
	repo.deptIDs[11] = ids(8)
	repo.addDisplayable(ids(8)...)
	svc := newTestService(repo)

	res, err := svc.FetchByDepartment(context.Background(), 11, 5)

	require.NoError(t, err)
	assert.Len(t, res, 5)
	assert.Empty(t, repo.searchQueries)
}

func TestFetchByDepartment_FallsBackToKeyword(t *testing.T) {
	repo := newFakeRepo()
	repo.deptErr = errors.New("catalog unavailable")
	repo.searchIDs["egyptian"] = ids(4)
	repo.addDisplayable(ids(4)...)
	svc := newTestService(repo)

	res, err := svc.FetchByDepartment(context.Background(), 10, 5)

	require.NoError(t, err)
	assert.Len(t, res, 4)
	assert.Equal(t, []string{"egyptian"}, repo.searchQueries)
}

func TestFetchByDepartment_FallsBackToRandom(t *testing.T) {
	repo := newFakeRepo()
	repo.deptErr = errors.New("catalog unavailable")
	repo.searchIDs[randomPoolQuery] = ids(3)
	repo.addDisplayable(ids(3)...)
	svc := newTestService(repo)

	// Department 99 has no keyword mapping, so the random tier is next.
	res, err := svc.FetchByDepartment(context.Background(), 99, 5)

	require.NoError(t, err)
	assert.Len(t, res, 3)
}

func TestListDepartments(t *testing.T) {
	repo := newFakeRepo()
	repo.departments = []domain.Department{
		{DepartmentID: 11, DisplayName: "European Paintings"},
	}
	svc := newTestService(repo)

	res, err := svc.ListDepartments(context.Background())

	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "European Paintings", res[0].DisplayName)
}

func TestCollect_ResultsAreFromCandidateSet(t *testing.T) {
	repo := newFakeRepo()
	repo.searchIDs[randomPoolQuery] = []int64{5, 3, 9}
	repo.addDisplayable(3, 5, 9)
	svc := newTestService(repo)

	res, err := svc.FetchRandom(context.Background(), 3)

	require.NoError(t, err)
	got := make([]int64, len(res))
	for i, a := range res {
		got[i] = a.ObjectID
	}
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	assert.Equal(t, []int64{3, 5, 9}, got)
}
