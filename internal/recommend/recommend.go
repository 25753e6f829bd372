// Package recommend builds the recommendation browser: personalized picks for
// a sample user profile and the top products of a category.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/HerbHall/renewhub/pkg/models"
)

// Count bounds for how many products to show.
const (
	MinCount     = 1
	MaxCount     = 8
	DefaultCount = 4
)

// DefaultUserID is the profile selected on entry.
const DefaultUserID = 1

// DefaultCategory is the category selected on entry.
const DefaultCategory = models.CategorySolar

// UserProfile is one of the sample users the recommender knows.
type UserProfile struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Label is the profile's selector text, e.g. "User 1 (Solar Enthusiast)".
func (p UserProfile) Label() string {
	return fmt.Sprintf("User %d (%s)", p.ID, p.Name)
}

var profiles = []UserProfile{
	{ID: 1, Name: "Solar Enthusiast"},
	{ID: 2, Name: "Wind Energy Focus"},
	{ID: 3, Name: "Mixed Energy Sources"},
	{ID: 4, Name: "Energy Storage Focus"},
	{ID: 5, Name: "Energy Efficiency Focus"},
}

// Profiles returns the sample user profiles in id order.
func Profiles() []UserProfile {
	out := make([]UserProfile, len(profiles))
	copy(out, profiles)
	return out
}

// ErrUnknownUser is returned for user ids without a profile.
var ErrUnknownUser = errors.New("unknown user profile")

// Profile returns the profile with id.
func Profile(id int) (UserProfile, error) {
	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return UserProfile{}, fmt.Errorf("user %d: %w", id, ErrUnknownUser)
}

// ValidCount reports whether n is within [MinCount, MaxCount].
func ValidCount(n int) bool {
	return n >= MinCount && n <= MaxCount
}

// ClampCount forces n into [MinCount, MaxCount].
func ClampCount(n int) int {
	return min(max(n, MinCount), MaxCount)
}

// CategoryTitle is the heading of the category list, e.g. "Top Solar Products".
func CategoryTitle(c models.Category) string {
	s := string(c)
	if s == "" {
		return "Top Products"
	}
	return "Top " + strings.ToUpper(s[:1]) + s[1:] + " Products"
}

// Source supplies recommendations and retrains the recommender.
type Source interface {
	UserRecommendations(ctx context.Context, userID, count int) ([]models.ScoredProduct, error)
	CategoryRecommendations(ctx context.Context, category models.Category, count int) ([]models.ScoredProduct, error)
	TrainRecommender(ctx context.Context) (models.TrainStatus, error)
}

// Query selects what the browser shows.
type Query struct {
	UserID   int             `json:"user_id"`
	Category models.Category `json:"category"`
	Count    int             `json:"count"`
}

// DefaultQuery is the selection on entry.
func DefaultQuery() Query {
	return Query{UserID: DefaultUserID, Category: DefaultCategory, Count: DefaultCount}
}

// Validate checks the user, category and count.
func (q Query) Validate() error {
	if _, err := Profile(q.UserID); err != nil {
		return err
	}
	if !q.Category.Valid() {
		return fmt.Errorf("unknown category %q", q.Category)
	}
	if !ValidCount(q.Count) {
		return fmt.Errorf("count must be between %d and %d, got %d", MinCount, MaxCount, q.Count)
	}
	return nil
}

// UserView is the personalized list for one profile.
type UserView struct {
	Profile         UserProfile            `json:"profile"`
	Recommendations []models.ScoredProduct `json:"recommendations"`
}

// CategoryView is the top list for one category.
type CategoryView struct {
	Category        models.Category        `json:"category"`
	Label           string                 `json:"label"`
	Title           string                 `json:"title"`
	Recommendations []models.ScoredProduct `json:"recommendations"`
}

// View is the whole recommendation page.
type View struct {
	Query    Query        `json:"query"`
	User     UserView     `json:"user"`
	Category CategoryView `json:"category"`
}

// Loader assembles recommendation views from a source.
type Loader struct {
	src    Source
	logger *zap.Logger
}

// NewLoader creates a loader. A nil logger discards output.
func NewLoader(src Source, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{src: src, logger: logger}
}

// LoadUser fetches personalized recommendations for userID.
func (l *Loader) LoadUser(ctx context.Context, userID, count int) (UserView, error) {
	profile, err := Profile(userID)
	if err != nil {
		return UserView{}, err
	}
	recs, err := l.src.UserRecommendations(ctx, userID, count)
	if err != nil {
		return UserView{}, fmt.Errorf("load recommendations for user %d: %w", userID, err)
	}
	if recs == nil {
		recs = []models.ScoredProduct{}
	}
	return UserView{Profile: profile, Recommendations: recs}, nil
}

// LoadCategory fetches the top products of category.
func (l *Loader) LoadCategory(ctx context.Context, category models.Category, count int) (CategoryView, error) {
	if !category.Valid() {
		return CategoryView{}, fmt.Errorf("unknown category %q", category)
	}
	recs, err := l.src.CategoryRecommendations(ctx, category, count)
	if err != nil {
		return CategoryView{}, fmt.Errorf("load recommendations for category %s: %w", category, err)
	}
	if recs == nil {
		recs = []models.ScoredProduct{}
	}
	return CategoryView{
		Category:        category,
		Label:           category.Label(),
		Title:           CategoryTitle(category),
		Recommendations: recs,
	}, nil
}

// Load fetches both lists concurrently. A failed personalized list fails the
// view; a failed category list is logged and left empty.
func (l *Loader) Load(ctx context.Context, q Query) (View, error) {
	if err := q.Validate(); err != nil {
		return View{}, err
	}

	v := View{Query: q}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		uv, err := l.LoadUser(gctx, q.UserID, q.Count)
		if err != nil {
			return err
		}
		v.User = uv
		return nil
	})
	g.Go(func() error {
		cv, err := l.LoadCategory(gctx, q.Category, q.Count)
		if err != nil {
			l.logger.Warn("failed to load category recommendations",
				zap.String("category", string(q.Category)), zap.Error(err))
			cv = CategoryView{
				Category:        q.Category,
				Label:           q.Category.Label(),
				Title:           CategoryTitle(q.Category),
				Recommendations: []models.ScoredProduct{},
			}
		}
		v.Category = cv
		return nil
	})
	if err := g.Wait(); err != nil {
		return View{}, err
	}
	return v, nil
}
