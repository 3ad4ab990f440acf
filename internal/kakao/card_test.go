package kakao

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thumb() Thumbnail {
	return Thumbnail{ImageURL: "https://img.example/1.png"}
}

// --- Simple element tests ---

func TestSimpleText(t *testing.T) {
	assert.JSONEq(t, `{"text":"안녕하세요"}`, renderJSON(t, NewSimpleText("안녕하세요")))

	_, err := NewSimpleText("").Render()
	assert.ErrorIs(t, err, ErrInvalidType)

	_, err = NewSimpleText(strings.Repeat("가", MaxSimpleTextLength+1)).Render()
	assert.ErrorIs(t, err, ErrCardinalityExceeded)
}

func TestSimpleImage(t *testing.T) {
	assert.JSONEq(t,
		`{"imageUrl":"https://img.example/a.png","altText":"메뉴"}`,
		renderJSON(t, NewSimpleImage("https://img.example/a.png", "메뉴")))

	_, err := NewSimpleImage("https://img.example/a.png", "").Render()
	assert.ErrorIs(t, err, ErrInvalidType)
}

// --- TextCard tests ---

func TestTextCard_TitleOrDescription(t *testing.T) {
	_, err := NewTextCard("", "").Render()
	assert.ErrorIs(t, err, ErrContractViolation)

	assert.JSONEq(t, `{"title":"x"}`, renderJSON(t, NewTextCard("x", "")))
	assert.JSONEq(t, `{"description":"y"}`, renderJSON(t, NewTextCard("", "y")))
}

func TestTextCard_Buttons(t *testing.T) {
	card := NewTextCard("식단", "").
		AddButton(NewMessageButton("오늘", "오늘 학식")).
		AddButton(NewWebLinkButton("홈페이지", "https://example.com/?a=1&b=2"))

	assert.JSONEq(t, `{
		"title": "식단",
		"buttons": [
			{"label":"오늘","action":"message","messageText":"오늘 학식"},
			{"label":"홈페이지","action":"webLink","webLinkUrl":"https://example.com/?a=1&b=2"}
		]}`, renderJSON(t, card))

	card.AddButton(NewShareButton("a")).AddButton(NewShareButton("b"))
	_, err := card.Render()
	assert.ErrorIs(t, err, ErrCardinalityExceeded)

	require.NoError(t, card.RemoveButton(0))
	assert.Len(t, card.Buttons, 3)
	assert.NoError(t, card.Validate())

	assert.ErrorIs(t, card.RemoveButton(5), ErrContractViolation)
}

func TestTextCard_InvalidButtonPath(t *testing.T) {
	card := NewTextCard("x", "", NewShareButton("ok"), Button{Label: "call", Interaction: Interaction{Action: ActionPhone}})
	err := card.Validate()
	require.ErrorIs(t, err, ErrInvalidType)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "buttons[1]", ve.Path)
}

// --- BasicCard tests ---

func TestBasicCard(t *testing.T) {
	card := NewBasicCard(
		Thumbnail{ImageURL: "https://img.example/t.png", Link: &Link{Web: "https://example.com"}, FixedRatio: true},
		"제목", "",
	)
	card.Forwardable = true

	assert.JSONEq(t, `{
		"thumbnail": {"imageUrl":"https://img.example/t.png","link":{"web":"https://example.com"},"fixedRatio":true},
		"title": "제목",
		"forwardable": true
	}`, renderJSON(t, card))
}

func TestBasicCard_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		card    *BasicCard
		wantErr error
	}{
		{"no thumbnail", &BasicCard{Title: "x"}, ErrInvalidType},
		{"thumbnail without url", &BasicCard{Thumbnail: &Thumbnail{}}, ErrInvalidType},
		{"empty link", &BasicCard{Thumbnail: &Thumbnail{ImageURL: "u", Link: &Link{}}}, ErrInvalidLink},
		{"too many buttons", NewBasicCard(thumb(), "", "",
			NewShareButton("1"), NewShareButton("2"), NewShareButton("3"), NewShareButton("4")), ErrCardinalityExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.card.Render()
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// --- CommerceCard tests ---

func TestCommerceCard(t *testing.T) {
	card := NewCommerceCard(10000, thumb(), NewWebLinkButton("구매", "https://shop.example"))
	card.Title = "도시락"
	card.Currency = CurrencyWon
	card.Discount = 1000
	card.DiscountRate = 10
	card.DiscountPrice = 9000
	card.Profile = &Profile{Nickname: "산돌식당"}

	assert.JSONEq(t, `{
		"price": 10000,
		"thumbnails": [{"imageUrl":"https://img.example/1.png"}],
		"title": "도시락",
		"currency": "won",
		"discount": 1000,
		"discountRate": 10,
		"discountPrice": 9000,
		"profile": {"nickname":"산돌식당"},
		"buttons": [{"label":"구매","action":"webLink","webLinkUrl":"https://shop.example"}]
	}`, renderJSON(t, card))
}

func TestCommerceCard_ZeroPriceIsKept(t *testing.T) {
	assert.JSONEq(t,
		`{"price":0,"thumbnails":[{"imageUrl":"https://img.example/1.png"}]}`,
		renderJSON(t, NewCommerceCard(0, thumb())))
}

func TestCommerceCard_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *CommerceCard)
		wantErr error
	}{
		{"negative price", func(c *CommerceCard) { c.Price = -1 }, ErrContractViolation},
		{"no thumbnail", func(c *CommerceCard) { c.Thumbnails = nil }, ErrContractViolation},
		{"two thumbnails", func(c *CommerceCard) { c.Thumbnails = append(c.Thumbnails, thumb()) }, ErrCardinalityExceeded},
		{"dollar", func(c *CommerceCard) { c.Currency = "usd" }, ErrContractViolation},
		{"rate without price", func(c *CommerceCard) { c.DiscountRate = 10 }, ErrContractViolation},
		{"rate over 100", func(c *CommerceCard) { c.DiscountRate = 120; c.DiscountPrice = 1 }, ErrContractViolation},
		{"profile without nickname", func(c *CommerceCard) { c.Profile = &Profile{ImageURL: "u"} }, ErrInvalidType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewCommerceCard(1000, thumb())
			tt.mutate(card)
			assert.ErrorIs(t, card.Validate(), tt.wantErr)
		})
	}
}

// --- ListCard tests ---

func TestListCard(t *testing.T) {
	card := NewListCard("메뉴",
		ListItem{Title: "점심", Description: "11:00~14:00"},
		ListItem{Title: "저녁", Interaction: Interaction{Action: ActionBlock, BlockID: "dinner"}},
	).AddButton(NewMessageButton("더보기", "메뉴 더보기"))

	assert.JSONEq(t, `{
		"header": {"title":"메뉴"},
		"items": [
			{"title":"점심","description":"11:00~14:00"},
			{"title":"저녁","action":"block","blockId":"dinner"}
		],
		"buttons": [{"label":"더보기","action":"message","messageText":"메뉴 더보기"}]
	}`, renderJSON(t, card))
}

func TestListCard_Invalid(t *testing.T) {
	six := make([]ListItem, MaxListItems+1)
	for i := range six {
		six[i] = ListItem{Title: "x"}
	}
	tests := []struct {
		name    string
		card    *ListCard
		wantErr error
	}{
		{"no header", &ListCard{Items: []ListItem{{Title: "x"}}}, ErrInvalidType},
		{"no items", NewListCard("h"), ErrContractViolation},
		{"too many items", NewListCard("h", six...), ErrCardinalityExceeded},
		{"phone row", NewListCard("h", ListItem{Title: "x", Interaction: Interaction{Action: ActionPhone, PhoneNumber: "1"}}), ErrInvalidAction},
		{"three buttons", NewListCard("h", ListItem{Title: "x"}).
			AddButton(NewShareButton("1")).AddButton(NewShareButton("2")).AddButton(NewShareButton("3")), ErrCardinalityExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.card.Validate(), tt.wantErr)
		})
	}
}

// --- ItemCard tests ---

func TestItemCard(t *testing.T) {
	card := NewItemCard().
		AddItem("점심 시간", "11:00 ~ 14:00").
		AddItem("가격", "6000원")
	card.ImageTitle = &ImageTitle{Title: "식당 정보", Description: "산돌식당"}
	card.Head = "등록 요청"
	card.ItemListAlignment = AlignRight
	card.ItemListSummary = &ItemListSummary{Title: "합계", Description: "6000원"}
	card.ButtonLayout = LayoutVertical
	card.AddButton(NewBlockButton("승인", "approve", "", map[string]any{"identification": "r1"}))

	assert.JSONEq(t, `{
		"head": {"title":"등록 요청"},
		"imageTitle": {"title":"식당 정보","description":"산돌식당"},
		"itemList": [
			{"title":"점심 시간","description":"11:00 ~ 14:00"},
			{"title":"가격","description":"6000원"}
		],
		"itemListAlignment": "right",
		"itemListSummary": {"title":"합계","description":"6000원"},
		"buttonLayout": "vertical",
		"buttons": [{"label":"승인","action":"block","blockId":"approve","extra":{"identification":"r1"}}]
	}`, renderJSON(t, card))
}

func TestItemCard_ThumbnailAndProfile(t *testing.T) {
	card := NewItemCard(Item{Title: "a", Description: "b"})
	card.Thumbnail = &ItemThumbnail{ImageURL: "https://img.example/i.png", Width: 800, Height: 400}
	card.Profile = &ItemProfile{Title: "산돌", ImageURL: "https://img.example/p.png"}

	assert.JSONEq(t, `{
		"thumbnail": {"imageUrl":"https://img.example/i.png","width":800,"height":400},
		"profile": {"title":"산돌","imageUrl":"https://img.example/p.png"},
		"itemList": [{"title":"a","description":"b"}]
	}`, renderJSON(t, card))
}

func TestItemCard_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *ItemCard)
		wantErr error
	}{
		{"head and profile", func(c *ItemCard) { c.Head = "h"; c.Profile = &ItemProfile{Title: "p"} }, ErrContractViolation},
		{"empty item list", func(c *ItemCard) { c.ItemList = nil }, ErrContractViolation},
		{"item without description", func(c *ItemCard) { c.AddItem("t", "") }, ErrInvalidType},
		{"bad alignment", func(c *ItemCard) { c.ItemListAlignment = "center" }, ErrContractViolation},
		{"bad layout", func(c *ItemCard) { c.ButtonLayout = "grid" }, ErrContractViolation},
		{"thumbnail without url", func(c *ItemCard) { c.Thumbnail = &ItemThumbnail{} }, ErrInvalidType},
		{"summary without title", func(c *ItemCard) { c.ItemListSummary = &ItemListSummary{Description: "d"} }, ErrInvalidType},
		{"too many items", func(c *ItemCard) {
			for i := 0; i < MaxItemListEntries; i++ {
				c.AddItem("t", "d")
			}
		}, ErrCardinalityExceeded},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			card := NewItemCard(Item{Title: "a", Description: "b"})
			tt.mutate(card)
			assert.ErrorIs(t, card.Validate(), tt.wantErr)
		})
	}
}
