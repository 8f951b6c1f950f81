package comment

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/openmuse/gallery/domain"
)

// usernameRe is the allowed charset for commenter names.
var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9 ._-]+$`)

type draft struct {
	Username string `validate:"required,min=2,max=50,usernamechars"`
	Comment  string `validate:"required,min=3,max=500"`
}

// Service implements the comment submission flow: pure synchronous
// validation, then POST and append to the in-memory list on success. An
// invalid draft blocks the submission before any network call is made.
type Service struct {
	social   domain.SocialGateway
	validate *validator.Validate

	mu     sync.Mutex
	byItem map[string][]domain.Comment
	now    func() time.Time
}

var _ domain.CommentUsecase = (*Service)(nil)

func NewService(social domain.SocialGateway) *Service {
	v := validator.New()
	_ = v.RegisterValidation("usernamechars", func(fl validator.FieldLevel) bool {
		return usernameRe.MatchString(fl.Field().String())
	})
	return &Service{
		social:   social,
		validate: v,
		byItem:   make(map[string][]domain.Comment),
		now:      time.Now,
	}
}

func (s *Service) Validate(username, comment string) domain.CommentValidation {
	d := draft{
		Username: strings.TrimSpace(username),
		Comment:  strings.TrimSpace(comment),
	}

	res := domain.CommentValidation{
		Username: domain.FieldValidation{IsValid: true},
		Comment:  domain.FieldValidation{IsValid: true},
	}

	err := s.validate.Struct(d)
	if err == nil {
		return res
	}

	for _, fe := range err.(validator.ValidationErrors) {
		switch fe.Field() {
		case "Username":
			res.Username = domain.FieldValidation{
				IsValid:      false,
				ErrorMessage: usernameMessage(fe),
			}
		case "Comment":
			res.Comment = domain.FieldValidation{
				IsValid:      false,
				ErrorMessage: commentMessage(fe),
			}
		}
	}
	return res
}

func (s *Service) Submit(ctx context.Context, objectID int64, username, comment string) (domain.Comment, error) {
	if v := s.Validate(username, comment); !v.OK() {
		return domain.Comment{}, domain.ErrInvalidComment
	}

	c := domain.Comment{
		ItemID:       strconv.FormatInt(objectID, 10),
		Username:     strings.TrimSpace(username),
		Comment:      strings.TrimSpace(comment),
		CreationDate: s.now().UTC().Format(time.RFC3339),
	}

	accepted, err := s.social.PostComment(ctx, c)
	if err != nil {
		// On failure the list is left unchanged.
		return domain.Comment{}, err
	}

	s.mu.Lock()
	s.byItem[c.ItemID] = append([]domain.Comment{accepted}, s.byItem[c.ItemID]...)
	s.mu.Unlock()

	return accepted, nil
}

func (s *Service) FetchByArtwork(ctx context.Context, objectID int64) ([]domain.Comment, error) {
	itemID := strconv.FormatInt(objectID, 10)

	comments, err := s.social.GetComments(ctx, itemID)
	if err != nil {
		// Serve the last known list when the backend is unreachable; a
		// thread that was readable a minute ago should not go blank.
		s.mu.Lock()
		cached, ok := s.byItem[itemID]
		s.mu.Unlock()
		if ok && len(cached) > 0 {
			logrus.Warnf("failed to fetch comments for %s, serving cached list: %v", itemID, err)
			res := make([]domain.Comment, len(cached))
			copy(res, cached)
			return res, nil
		}
		return nil, err
	}

	// Newest first is a display ordering, not a storage invariant; the
	// backend makes no promise about order.
	sort.SliceStable(comments, func(i, j int) bool {
		return laterCreation(comments[i].CreationDate, comments[j].CreationDate)
	})

	s.mu.Lock()
	s.byItem[itemID] = comments
	s.mu.Unlock()

	res := make([]domain.Comment, len(comments))
	copy(res, comments)
	return res, nil
}

func laterCreation(a, b string) bool {
	ta, errA := time.Parse(time.RFC3339, a)
	tb, errB := time.Parse(time.RFC3339, b)
	if errA != nil || errB != nil {
		return a > b
	}
	return ta.After(tb)
}

func usernameMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Name is required"
	case "min":
		return "Name must be at least 2 characters long"
	case "max":
		return "Name cannot exceed 50 characters"
	default:
		return "Name can only contain letters, numbers, spaces, dots, hyphens, and underscores"
	}
}

func commentMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "Comment is required"
	case "min":
		return "Comment must be at least 3 characters long"
	default:
		return "Comment cannot exceed 500 characters"
	}
}
