package skills

import (
	"context"

	"github.com/sandol-bot/sandol/internal/kakao"
	"github.com/sandol-bot/sandol/internal/kakao/payload"
)

const helpText = `학식 메뉴와 식당 정보를 알려드려요.

• "학식": 오늘의 점심·저녁 메뉴
• "학식 <식당 이름>": 한 식당의 메뉴
• "메뉴 검색": 메뉴를 제공하는 식당 찾기`

// Help explains what the bot can do.
func (s *Skills) Help(_ context.Context, _ *payload.Payload) (*kakao.Response, error) {
	card := kakao.NewTextCard("산돌이 도움말", helpText,
		kakao.NewMessageButton("학식 보기", "학식"),
		kakao.NewMessageButton("메뉴 검색", "메뉴 검색"),
	)
	resp := kakao.NewResponse().AddComponent(card)
	if web := s.cfg.CafeteriaWeb; web != nil {
		card.AddButton(kakao.NewWebLinkButton(web.Title, web.URL))
	}
	return resp.
		AddMessageQuickReply("학식", "학식").
		AddMessageQuickReply("도움말", "도움말"), nil
}
