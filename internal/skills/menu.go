package skills

import (
	"context"
	"errors"

	"github.com/sandol-bot/sandol/internal/domain"
	"github.com/sandol-bot/sandol/internal/kakao"
	"github.com/sandol-bot/sandol/internal/kakao/payload"
	"github.com/sandol-bot/sandol/internal/skill"
)

// MaxMenusPerInput caps how many dishes one utterance may register.
const MaxMenusPerInput = 5

// AddMenu adds the dishes in the "menu" parameter to the caller's draft
// menu for meal. Dishes already on the draft are skipped.
func (s *Skills) AddMenu(meal domain.MealType) skill.Handler {
	return func(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
		r, reply, err := s.restaurantFor(ctx, p)
		if r == nil {
			return reply, err
		}
		input, _ := p.DetailOrigin("menu")
		for _, name := range domain.SplitMenu(input) {
			err := s.store.AddDraftMenu(ctx, r.ID, meal, name)
			if err != nil && !errors.Is(err, domain.ErrDuplicateMenu) {
				return nil, err
			}
		}
		return s.draftResponse(ctx, r)
	}
}

// DeleteMenuPrompt offers the caller's draft dishes for meal as quick
// replies that call the delete block.
func (s *Skills) DeleteMenuPrompt(meal domain.MealType) skill.Handler {
	return func(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
		r, reply, err := s.restaurantFor(ctx, p)
		if r == nil {
			return reply, err
		}
		lunch, dinner, err := s.store.DraftMenus(ctx, r.ID)
		if err != nil {
			return nil, err
		}
		menus := lunch
		if meal == domain.Dinner {
			menus = dinner
		}
		if len(menus) == 0 {
			return text("삭제할 메뉴가 없습니다."), nil
		}

		resp := text("삭제할 메뉴를 선택해주세요.")
		for _, m := range menus {
			if len(resp.QuickReplies()) >= kakao.MaxQuickReplies {
				break
			}
			resp.AddBlockQuickReply(m, s.cfg.Blocks.DeleteMenuItem, map[string]any{
				"meal_type": string(meal),
				"menu":      m,
			})
		}
		return resp, nil
	}
}

// DeleteMenu removes the dish chosen from DeleteMenuPrompt.
func (s *Skills) DeleteMenu(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
	r, reply, err := s.restaurantFor(ctx, p)
	if r == nil {
		return reply, err
	}
	mealName, _ := p.ClientExtra("meal_type")
	menu, _ := p.ClientExtra("menu")
	meal, err := domain.ParseMealType(mealName)
	if err != nil {
		return s.draftError("잘못된 요청입니다."), nil
	}

	if err := s.store.DeleteDraftMenu(ctx, r.ID, meal, menu); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.draftError("등록되지 않은 메뉴입니다."), nil
		}
		return nil, err
	}
	return s.draftResponse(ctx, r)
}

// DeleteAllMenus clears the caller's draft.
func (s *Skills) DeleteAllMenus(ctx context.Context, p *payload.Payload) (*kakao.Response, error) {
	r, reply, err := s.restaurantFor(ctx, p)
	if r == nil {
		return reply, err
	}
	if err := s.store.ClearDraftMenus(ctx, r.ID); err != nil {
		return nil, err
	}
	return text("모든 메뉴가 삭제되었습니다."), nil
}

// ValidateMenu rejects input with more than MaxMenusPerInput dishes.
func (s *Skills) ValidateMenu(_ context.Context, p *payload.ValidationPayload) (*kakao.ValidationResponse, error) {
	if len(domain.SplitMenu(p.Utterance)) > MaxMenusPerInput {
		return kakao.ValidationFailure(kakao.StatusError, "메뉴는 5개까지만 등록할 수 있습니다.\n다시 입력해주세요."), nil
	}
	return kakao.ValidationSuccess(nil), nil
}

// draftResponse shows the draft menus with the editing quick replies.
func (s *Skills) draftResponse(ctx context.Context, r *domain.Restaurant) (*kakao.Response, error) {
	lunch, dinner, err := s.store.DraftMenus(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	draft := *r
	draft.LunchMenu, draft.DinnerMenu = lunch, dinner

	l, d := mealCards([]domain.Restaurant{draft}, publishedMenu)
	resp := kakao.NewResponse().AddComponent(l).AddComponent(d)
	if resp.IsEmpty() {
		resp.AddText("등록된 메뉴가 없습니다.")
	}
	return s.withDraftReplies(resp), nil
}

func (s *Skills) draftError(msg string) *kakao.Response {
	return s.withDraftReplies(text(msg))
}

func (s *Skills) withDraftReplies(resp *kakao.Response) *kakao.Response {
	b := s.cfg.Blocks
	return resp.
		AddBlockQuickReply("확정", b.Confirm, nil).
		AddBlockQuickReply("점심 메뉴 추가", b.AddLunchMenu, nil).
		AddBlockQuickReply("저녁 메뉴 추가", b.AddDinnerMenu, nil).
		AddBlockQuickReply("메뉴 삭제", b.DeleteMenu, nil).
		AddBlockQuickReply("모든 메뉴 삭제", b.DeleteAllMenus, nil)
}
