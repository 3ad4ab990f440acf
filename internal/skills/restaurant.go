package skills

import (
	"context"
	"errors"
	"slices"
	"strconv"
	"strings"

	"github.com/sandol-bot/sandol/internal/domain"
	"github.com/sandol-bot/sandol/internal/kakao"
	"github.com/sandol-bot/sandol/internal/kakao/payload"
)

// Answers accepted as "yes" when confirming a decline.
var confirmAnswers = []string{"예", "네", "ㅖ", "응", "어"}

// RegisterRestaurant files a registration request for the caller.
func (s *Skills) RegisterRestaurant(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
	reg, err := registrationFrom(p)
	if err != nil {
		s.log.Debug().Err(err).Str("user", p.UserID()).Msg("bad registration input")
		return text("입력한 식당 정보가 올바르지 않습니다. 다시 시도해주세요."), nil
	}
	reg.CreatedAt = s.now()
	if err := s.store.SaveRegistration(ctx, reg); err != nil {
		return nil, err
	}
	s.log.Info().Str("user", reg.ID).Str("name", reg.Name).Msg("restaurant registration filed")

	return text("아래 정보로 식당 등록 신청이 완료되었습니다.").
		AddComponent(restaurantCard(reg.Name, reg.Lunch, reg.Dinner, reg.PricePerPerson)), nil
}

func registrationFrom(p *payload.Payload) (domain.Registration, error) {
	reg := domain.Registration{ID: p.UserID()}
	if reg.ID == "" {
		return reg, errors.New("missing user id")
	}

	name, _ := p.DetailOrigin("name")
	reg.Name = strings.TrimSpace(name)
	if reg.Name == "" {
		return reg, errors.New("missing restaurant name")
	}

	price, _ := p.DetailOrigin("price_per_person")
	n, err := strconv.Atoi(strings.TrimSpace(price))
	if err != nil || n < 0 {
		return reg, errors.New("invalid price " + strconv.Quote(price))
	}
	reg.PricePerPerson = n

	clocks := make([]domain.Clock, 4)
	for i, key := range []string{"lunch_start", "lunch_end", "dinner_start", "dinner_end"} {
		v, _ := p.DetailOrigin(key)
		if clocks[i], err = domain.ParseClock(strings.TrimSpace(v)); err != nil {
			return reg, err
		}
	}
	reg.Lunch = domain.Hours{Open: clocks[0], Close: clocks[1]}
	reg.Dinner = domain.Hours{Open: clocks[2], Close: clocks[3]}
	return reg, nil
}

// ListRegistrations shows pending requests with approve and decline
// buttons.
func (s *Skills) ListRegistrations(ctx context.Context, _ *payload.Payload) (*kakao.Response, error) {
	regs, err := s.store.ListRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	if len(regs) == 0 {
		return text("승인 대기 중인 식당이 없습니다."), nil
	}

	carousel := &kakao.Carousel{}
	for _, reg := range regs {
		if carousel.Len() >= maxCarouselCards {
			break
		}
		extra := map[string]any{"identification": reg.ID}
		card := restaurantCard(reg.Name, reg.Lunch, reg.Dinner, reg.PricePerPerson).
			AddButton(kakao.NewBlockButton("승인", s.cfg.Blocks.ApproveRestaurant, "", extra)).
			AddButton(kakao.NewBlockButton("거절", s.cfg.Blocks.DeclineRestaurant, "", extra))
		_ = carousel.AddItem(card)
	}
	return kakao.NewResponse().AddComponent(carousel), nil
}

// ApproveRestaurant approves the request named by the "identification"
// extra. The "place" parameter must be 교내 or 교외; anything else cancels.
func (s *Skills) ApproveRestaurant(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
	place, _ := p.DetailOrigin("place")
	loc := domain.Location(strings.TrimSpace(place))
	if loc != domain.OnCampus && loc != domain.OffCampus {
		return text("등록 승인이 취소되었습니다. 승인하시려면 다시 승인 버튼을 눌러주세요."), nil
	}
	id, ok := p.ClientExtra("identification")
	if !ok {
		return text("승인할 식당 정보가 없습니다."), nil
	}

	r, err := s.store.ApproveRegistration(ctx, id, loc)
	if errors.Is(err, domain.ErrNotFound) {
		return text("이미 처리된 신청입니다."), nil
	}
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("restaurant", r.Name).Str("location", string(loc)).Msg("restaurant approved")
	return text("등록 완료"), nil
}

// DeclineRestaurant drops the request named by the "identification" extra
// once "double_check" confirms it.
func (s *Skills) DeclineRestaurant(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
	answer, _ := p.DetailOrigin("double_check")
	if !slices.Contains(confirmAnswers, strings.TrimSpace(answer)) {
		return text("등록 거절이 취소 되었습니다. 거절하시려면 다시 거절 버튼을 눌러주세요."), nil
	}
	id, ok := p.ClientExtra("identification")
	if !ok {
		return text("거절할 식당 정보가 없습니다."), nil
	}

	if err := s.store.DeleteRegistration(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return text("이미 처리된 신청입니다."), nil
		}
		return nil, err
	}
	return text("등록이 거절되었습니다."), nil
}
