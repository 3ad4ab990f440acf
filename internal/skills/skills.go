// Package skills implements the cafeteria chatbot's skill handlers on top
// of the kakao response model.
package skills

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandol-bot/sandol/internal/config"
	"github.com/sandol-bot/sandol/internal/domain"
	"github.com/sandol-bot/sandol/internal/kakao"
	"github.com/sandol-bot/sandol/internal/kakao/payload"
	"github.com/sandol-bot/sandol/internal/logging"
	"github.com/sandol-bot/sandol/internal/skill"
)

// kst is the bot's wall clock zone.
var kst = time.FixedZone("KST", 9*60*60)

// maxCarouselCards is how many cards Open Builder shows in one carousel.
const maxCarouselCards = 10

// Store is the persistence the skills need.
type Store interface {
	SaveRegistration(ctx context.Context, r domain.Registration) error
	ListRegistrations(ctx context.Context) ([]domain.Registration, error)
	DeleteRegistration(ctx context.Context, id string) error
	ApproveRegistration(ctx context.Context, id string, location domain.Location) (*domain.Restaurant, error)

	GetRestaurant(ctx context.Context, id string) (*domain.Restaurant, error)
	FindRestaurant(ctx context.Context, name string) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	SearchMenu(ctx context.Context, term string) ([]string, error)

	AddDraftMenu(ctx context.Context, restaurantID string, meal domain.MealType, name string) error
	DraftMenus(ctx context.Context, restaurantID string) (lunch, dinner []string, err error)
	DeleteDraftMenu(ctx context.Context, restaurantID string, meal domain.MealType, name string) error
	ClearDraftMenus(ctx context.Context, restaurantID string) error
	PublishMenus(ctx context.Context, restaurantID string, at time.Time) error
}

// Registrar is where skills are mounted; *skill.Server satisfies it.
type Registrar interface {
	Handle(name string, h skill.Handler)
	HandleValidation(name string, h skill.ValidationHandler)
}

// Skills holds the dependencies shared by every handler.
type Skills struct {
	store Store
	cfg   config.SkillsConfig
	log   *logging.Logger
	now   func() time.Time
}

// Option configures Skills.
type Option func(*Skills)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Skills) { s.now = now }
}

// New returns the skill set backed by store.
func New(store Store, cfg config.SkillsConfig, log *logging.Logger, opts ...Option) *Skills {
	s := &Skills{store: store, cfg: cfg, log: log.Sub("skills"), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register mounts every skill on r.
func (s *Skills) Register(r Registrar) {
	r.Handle("help", s.Help)

	r.Handle("meal/view", s.MealView)
	r.Handle("meal/restaurant", s.RestaurantInfo)
	r.Handle("meal/search", s.MenuSearch)
	r.Handle("meal/submit", s.Submit)
	r.Handle("meal/register/lunch", s.AddMenu(domain.Lunch))
	r.Handle("meal/register/dinner", s.AddMenu(domain.Dinner))
	r.Handle("meal/register/delete/lunch", s.DeleteMenuPrompt(domain.Lunch))
	r.Handle("meal/register/delete/dinner", s.DeleteMenuPrompt(domain.Dinner))
	r.Handle("meal/register/delete_menu", s.DeleteMenu)
	r.Handle("meal/register/delete_all", s.DeleteAllMenus)

	r.Handle("restaurant/register", s.RegisterRestaurant)
	r.Handle("restaurant/list", s.ListRegistrations)
	r.Handle("restaurant/approve", s.ApproveRestaurant)
	r.Handle("restaurant/decline", s.DeclineRestaurant)

	r.HandleValidation("menu", s.ValidateMenu)
}

// text is a response with a single message.
func text(msg string) *kakao.Response {
	return kakao.NewResponse().AddText(msg)
}

// mealCards builds one carousel of menu cards per meal. Restaurants without
// a menu for a meal are skipped in that carousel.
func mealCards(restaurants []domain.Restaurant, menu func(domain.Restaurant, domain.MealType) []string) (lunch, dinner *kakao.Carousel) {
	lunch, dinner = &kakao.Carousel{}, &kakao.Carousel{}
	for _, r := range restaurants {
		for _, meal := range []domain.MealType{domain.Lunch, domain.Dinner} {
			items := menu(r, meal)
			target := lunch
			if meal == domain.Dinner {
				target = dinner
			}
			if len(items) == 0 || target.Len() >= maxCarouselCards {
				continue
			}
			card := kakao.NewTextCard(fmt.Sprintf("%s(%s)", r.Name, meal.Label()), strings.Join(items, "\n"))
			// Both carousels only ever hold text cards.
			_ = target.AddItem(card)
		}
	}
	return lunch, dinner
}

func publishedMenu(r domain.Restaurant, meal domain.MealType) []string { return r.Menu(meal) }

// restaurantCard summarizes a restaurant's opening hours and price.
func restaurantCard(name string, lunch, dinner domain.Hours, price int) *kakao.ItemCard {
	card := kakao.NewItemCard(
		kakao.Item{Title: "점심 시간", Description: lunch.String()},
		kakao.Item{Title: "저녁 시간", Description: dinner.String()},
	)
	card.ImageTitle = &kakao.ImageTitle{Title: name, Description: "식당 정보"}
	card.AddItem("가격", won(price))
	return card
}

func won(n int) string {
	return strconv.Itoa(n) + "원"
}

// restaurantFor loads the caller's restaurant. A user that was never
// approved gets a message instead of an error.
func (s *Skills) restaurantFor(ctx context.Context, p *payload.Payload) (*domain.Restaurant, *kakao.Response, error) {
	r, err := s.store.GetRestaurant(ctx, p.UserID())
	if errors.Is(err, domain.ErrNotFound) {
		return nil, text("등록된 식당 정보가 없습니다. 먼저 식당 등록을 신청해주세요."), nil
	}
	if err != nil {
		return nil, nil, err
	}
	return r, nil, nil
}
