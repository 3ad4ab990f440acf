package skills

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sandol-bot/sandol/internal/domain"
	"github.com/sandol-bot/sandol/internal/kakao"
	"github.com/sandol-bot/sandol/internal/kakao/payload"
)

// MealView shows today's published menus as a lunch and a dinner carousel.
// The optional "Cafeteria" parameter narrows the view to one restaurant.
func (s *Skills) MealView(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
	all, err := s.store.ListRestaurants(ctx)
	if err != nil {
		return nil, err
	}
	target, _ := p.DetailParam("Cafeteria")

	restaurants := all
	if target != "" {
		restaurants = nil
		for _, r := range all {
			if r.Name == target {
				restaurants = append(restaurants, r)
			}
		}
	}
	restaurants = orderByFreshness(restaurants, s.now())

	lunch, dinner := mealCards(restaurants, publishedMenu)
	resp := kakao.NewResponse().AddComponent(lunch).AddComponent(dinner)
	if resp.IsEmpty() {
		resp.AddText("식단 정보가 없습니다.")
	}
	if web := s.cfg.CafeteriaWeb; web != nil && target == "" {
		resp.AddComponent(kakao.NewTextCard(web.Title, web.URL))
	}

	if target != "" {
		resp.AddMessageQuickReply("모두 보기", "학식")
	}
	for _, r := range all {
		if len(resp.QuickReplies()) >= kakao.MaxQuickReplies {
			break
		}
		if r.Name != target {
			resp.AddMessageQuickReply(r.Name, "학식 "+r.Name)
		}
	}
	return resp, nil
}

// orderByFreshness puts restaurants that published after 19:00 KST
// yesterday first. Each group keeps publication order.
func orderByFreshness(restaurants []domain.Restaurant, now time.Time) []domain.Restaurant {
	y := now.In(kst).AddDate(0, 0, -1)
	cutoff := time.Date(y.Year(), y.Month(), y.Day(), 19, 0, 0, 0, kst)

	var fresh, stale []domain.Restaurant
	for _, r := range restaurants {
		if r.RegisteredAt.Before(cutoff) {
			stale = append(stale, r)
		} else {
			fresh = append(fresh, r)
		}
	}
	byTime := func(rs []domain.Restaurant) {
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].RegisteredAt.Before(rs[j].RegisteredAt) })
	}
	byTime(fresh)
	byTime(stale)
	return append(fresh, stale...)
}

// RestaurantInfo describes the restaurant named by the "restaurant_name"
// client extra.
func (s *Skills) RestaurantInfo(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
	name, ok := p.ClientExtra("restaurant_name")
	if !ok {
		name, _ = p.DetailParam("Cafeteria")
	}
	r, err := s.store.FindRestaurant(ctx, name)
	if errors.Is(err, domain.ErrNotFound) {
		return text("식당 정보를 찾을 수 없습니다."), nil
	}
	if err != nil {
		return nil, err
	}

	card := kakao.NewItemCard(
		kakao.Item{Title: "점심 시간", Description: r.Lunch.String()},
		kakao.Item{Title: "저녁 시간", Description: r.Dinner.String()},
		kakao.Item{Title: "위치", Description: string(r.Location)},
		kakao.Item{Title: "가격", Description: won(r.PricePerPerson)},
	)
	card.ImageTitle = &kakao.ImageTitle{Title: r.Name, Description: "식당 정보"}
	card.AddButton(kakao.NewMessageButton("메뉴 보기", "학식 "+r.Name))
	if url, ok := s.cfg.MapURLs[r.Name]; ok {
		card.AddButton(kakao.NewWebLinkButton("식당 위치 지도 보기", url))
	}
	return kakao.NewResponse().AddComponent(card), nil
}

// MenuSearch lists restaurants serving a dish given in the "menu"
// parameter.
func (s *Skills) MenuSearch(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
	term, _ := p.DetailParam("menu")
	term = strings.TrimSpace(term)
	if term == "" {
		return text("검색할 메뉴를 입력해주세요."), nil
	}
	names, err := s.store.SearchMenu(ctx, term)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return text(fmt.Sprintf("'%s' 메뉴를 제공하는 식당이 없습니다.", term)), nil
	}

	resp := text(fmt.Sprintf("'%s' 메뉴를 제공하는 식당입니다.", term))
	list := kakao.NewListCard(fmt.Sprintf("'%s' 검색 결과", term))
	for _, n := range names {
		if len(list.Items) >= kakao.MaxListItems {
			break
		}
		list.AddItem(kakao.ListItem{
			Title:       n,
			Interaction: kakao.Interaction{Action: kakao.ActionMessage, MessageText: "학식 " + n},
		})
	}
	return resp.AddComponent(list), nil
}

// Submit publishes the caller's draft menus.
func (s *Skills) Submit(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
	r, reply, err := s.restaurantFor(ctx, p)
	if r == nil {
		return reply, err
	}
	if err := s.store.PublishMenus(ctx, r.ID, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return text("저장된 식당 정보가 없습니다. 관리자에게 문의해주세요."), nil
		}
		return nil, err
	}
	s.log.Info().Str("restaurant", r.Name).Msg("menus submitted")

	saved, err := s.store.GetRestaurant(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	lunch, dinner := mealCards([]domain.Restaurant{*saved}, publishedMenu)
	return text("식단 정보가 아래 내용으로 확정 등록되었습니다.").
		AddComponent(lunch).
		AddComponent(dinner), nil
}
