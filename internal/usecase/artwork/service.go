package artwork

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/openmuse/gallery/domain"
)

const (
	// randomPoolQuery seeds the generic candidate pool for the random feed.
	randomPoolQuery = "painting"

	// fetchBatchSize bounds how many ids one batch lookup resolves; batch
	// N+1 does not start before batch N finished. Tunable throttle policy,
	// not a correctness requirement.
	fetchBatchSize = 5

	// searchCandidateLimit caps how many ids a keyword search will resolve
	// into objects before the relevance filter runs.
	searchCandidateLimit = 60
)

// departmentKeywords maps department ids to a fallback search keyword used
// when the direct department filter returns nothing.
var departmentKeywords = map[int64]string{
	1:  "american furniture",
	3:  "mesopotamia",
	4:  "armor",
	5:  "africa",
	6:  "asian",
	7:  "cloisters",
	8:  "costume",
	9:  "drawing",
	10: "egyptian",
	11: "painting",
	12: "sculpture",
	13: "greek",
	14: "islamic",
	15: "lehman",
	16: "manuscript",
	17: "medieval",
	18: "instrument",
	19: "photograph",
	21: "modern art",
}

// Service is the artwork fetch pipeline. Given a source strategy and a
// target count it produces a bounded, validated, deduplicated artwork list.
type Service struct {
	repo    domain.ArtworkRepository
	limiter *rate.Limiter

	// shuffle is swappable so tests can pin the candidate order.
	shuffle func(ids []int64)
}

var _ domain.ArtworkUsecase = (*Service)(nil)

// NewService will create a new artwork pipeline service object. limiter may
// be nil, in which case a default catalog-friendly throttle is used; a
// custom limiter needs a burst covering one full batch.
func NewService(repo domain.ArtworkRepository, limiter *rate.Limiter) *Service {
	if limiter == nil {
		// Roughly three object fetches per second with room for one full
		// batch burst; deliberate politeness toward the public catalog.
		limiter = rate.NewLimiter(rate.Every(300*time.Millisecond), fetchBatchSize)
	}
	return &Service{
		repo:    repo,
		limiter: limiter,
		shuffle: func(ids []int64) {
			rand.Shuffle(len(ids), func(i, j int) {
				ids[i], ids[j] = ids[j], ids[i]
			})
		},
	}
}

func (s *Service) FetchRandom(ctx context.Context, n int) ([]domain.Artwork, error) {
	ids, err := s.repo.SearchIDs(ctx, randomPoolQuery, true)
	if err != nil {
		return nil, err
	}

	s.shuffle(ids)
	res, err := s.collect(ctx, ids, n)
	if err != nil {
		return nil, err
	}
	if len(res) == 0 {
		return []domain.Artwork{}, domain.ErrNoArtworksFound
	}
	return res, nil
}

func (s *Service) Search(ctx context.Context, query string, n int) ([]domain.Artwork, error) {
	ids, err := s.repo.SearchIDs(ctx, query, true)
	if err != nil {
		return nil, err
	}
	if len(ids) > searchCandidateLimit {
		ids = ids[:searchCandidateLimit]
	}

	// Resolve more objects than requested so the relevance filter has a
	// real candidate set to rank.
	raw, err := s.collect(ctx, ids, max(3*n, fetchBatchSize))
	if err != nil {
		return nil, err
	}

	res := Rank(raw, query, false)
	if len(res) > n {
		res = res[:n]
	}
	if res == nil {
		res = []domain.Artwork{}
	}
	return res, nil
}

// FetchByDepartment tries three strategies in order: the direct department
// filter, a static keyword per department, and finally the generic random
// sample. The earlier tiers only log their failures; a department page is
// never empty unless everything is exhausted.
func (s *Service) FetchByDepartment(ctx context.Context, departmentID int64, n int) ([]domain.Artwork, error) {
	ids, err := s.repo.ObjectIDsByDepartment(ctx, departmentID)
	if err != nil {
		logrus.Warnf("department %d id listing failed, falling back: %v", departmentID, err)
	}
	if len(ids) > 0 {
		s.shuffle(ids)
		res, err := s.collect(ctx, ids, n)
		if err != nil {
			return nil, err
		}
		if len(res) > 0 {
			return res, nil
		}
	}

	if keyword, ok := departmentKeywords[departmentID]; ok {
		ids, err := s.repo.SearchIDs(ctx, keyword, true)
		if err != nil {
			logrus.Warnf("department %d keyword search failed, falling back: %v", departmentID, err)
		}
		if len(ids) > 0 {
			s.shuffle(ids)
			res, err := s.collect(ctx, ids, n)
			if err != nil {
				return nil, err
			}
			if len(res) > 0 {
				return res, nil
			}
		}
	}

	return s.FetchRandom(ctx, n)
}

func (s *Service) ListDepartments(ctx context.Context) ([]domain.Department, error) {
	return s.repo.ListDepartments(ctx)
}

func (s *Service) GetByID(ctx context.Context, id int64) (domain.Artwork, error) {
	return s.repo.GetByID(ctx, id)
}

// collect resolves candidate ids in sequential batches until n displayable
// artworks are gathered or the candidates run out. Each batch goes through
// the repository's batch lookup, so ids already in the cache never reach
// the catalog; ids that cannot be resolved are dropped there. Only context
// cancellation aborts.
func (s *Service) collect(ctx context.Context, ids []int64, n int) ([]domain.Artwork, error) {
	if n <= 0 {
		return nil, nil
	}

	var res []domain.Artwork
	seen := make(map[int64]bool, len(ids))

	for start := 0; start < len(ids); start += fetchBatchSize {
		if len(res) >= n {
			break
		}

		end := min(start+fetchBatchSize, len(ids))
		batch := make([]int64, 0, fetchBatchSize)
		for _, id := range ids[start:end] {
			if seen[id] {
				continue
			}
			seen[id] = true
			batch = append(batch, id)
		}
		if len(batch) == 0 {
			continue
		}

		if err := s.limiter.WaitN(ctx, len(batch)); err != nil {
			return nil, err
		}

		arts, err := s.repo.GetByIDs(ctx, batch)
		if err != nil {
			return nil, err
		}
		for _, a := range arts {
			if !a.Displayable() {
				continue
			}
			res = append(res, a)
		}
	}

	if len(res) > n {
		res = res[:n]
	}
	return res, nil
}
