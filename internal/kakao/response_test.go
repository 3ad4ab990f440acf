package kakao

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Response rendering tests ---

func TestResponse_SimpleText(t *testing.T) {
	b, err := NewResponse().AddText("Hello").JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"version":"2.0","template":{"outputs":[{"simpleText":{"text":"Hello"}}]}}`, string(b))
}

func TestResponse_KoreanIsNotEscaped(t *testing.T) {
	b, err := NewResponse().AddText("오늘의 메뉴 <특식> & 후식").JSON()
	require.NoError(t, err)
	assert.Contains(t, string(b), "오늘의 메뉴 <특식> & 후식")
}

func TestResponse_Empty(t *testing.T) {
	r := NewResponse()
	assert.True(t, r.IsEmpty())
	b, err := r.JSON()
	require.NoError(t, err)
	assert.Equal(t, `{"version":"2.0"}`, string(b))
}

func TestResponse_Full(t *testing.T) {
	ttl := 60
	r := NewResponse().
		AddText("등록되었습니다.").
		AddMessageQuickReply("도움말", "도움말").
		AddBlockQuickReply("목록", "list", map[string]any{"page": 1}).
		AddContext(Context{Name: "register", Lifespan: 3, TTL: &ttl, Params: map[string]string{"id": "r1"}})
	r.Data = map[string]any{"id": "r1"}

	b, err := r.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version": "2.0",
		"template": {
			"outputs": [{"simpleText":{"text":"등록되었습니다."}}],
			"quickReplies": [
				{"label":"도움말","action":"message","messageText":"도움말"},
				{"label":"목록","action":"block","blockId":"list","extra":{"page":1}}
			]
		},
		"context": {"values":[{"name":"register","lifespan":3,"ttl":60,"params":{"id":"r1"}}]},
		"data": {"id":"r1"}
	}`, string(b))
}

func TestResponse_ContextZeroLifespanIsKept(t *testing.T) {
	b, err := NewResponse().AddText("x").AddContextValue("flow", 0, nil).JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"version":"2.0",
		"template":{"outputs":[{"simpleText":{"text":"x"}}]},
		"context":{"values":[{"name":"flow","lifespan":0}]}
	}`, string(b))
}

func TestResponse_EmptyCarouselIsSkipped(t *testing.T) {
	r := NewResponse().AddComponent(&Carousel{}).AddText("x")
	assert.Len(t, r.Components(), 1)

	b, err := r.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2.0","template":{"outputs":[{"simpleText":{"text":"x"}}]}}`, string(b))
}

func TestResponse_CarouselOutput(t *testing.T) {
	c, err := NewCarousel(NewTextCard("a", ""))
	require.NoError(t, err)

	b, err := NewResponse().AddComponent(c).JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2.0","template":{"outputs":[
		{"carousel":{"type":"textCard","items":[{"title":"a"}]}}
	]}}`, string(b))
}

// --- Response validation tests ---

func TestResponse_TooManyOutputsFailsAtValidate(t *testing.T) {
	r := NewResponse()
	for i := 0; i < MaxOutputs+1; i++ {
		r.AddText("x")
	}
	assert.Len(t, r.Components(), MaxOutputs+1)

	assert.ErrorIs(t, r.Validate(), ErrCardinalityExceeded)
	_, err := r.Render()
	assert.ErrorIs(t, err, ErrCardinalityExceeded)
}

func TestResponse_TooManyQuickReplies(t *testing.T) {
	r := NewResponse().AddText("x")
	for i := 0; i < MaxQuickReplies+1; i++ {
		r.AddMessageQuickReply("q", "q")
	}
	_, err := r.JSON()
	assert.ErrorIs(t, err, ErrCardinalityExceeded)
}

func TestResponse_ErrorPath(t *testing.T) {
	card := NewBasicCard(thumb(), "x", "", NewShareButton("ok"), Button{Label: "call", Interaction: Interaction{Action: ActionPhone}})
	r := NewResponse().AddText("a").AddComponent(card)

	doc, err := r.Render()
	assert.Nil(t, doc)
	require.ErrorIs(t, err, ErrInvalidType)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "outputs[1].basicCard.buttons[1]", ve.Path)
	assert.Contains(t, err.Error(), "phoneNumber")
}

func TestResponse_InvalidQuickReplyAndContext(t *testing.T) {
	r := NewResponse().AddText("x").AddQuickReply(QuickReply{Label: "x", Interaction: Interaction{Action: ActionShare}})
	assert.ErrorIs(t, r.Validate(), ErrInvalidAction)

	r = NewResponse().AddText("x").AddContextValue("", 1, nil)
	assert.ErrorIs(t, r.Validate(), ErrInvalidType)

	r = NewResponse().AddText("x").AddContextValue("c", -1, nil)
	assert.ErrorIs(t, r.Validate(), ErrContractViolation)
}

// --- Merge tests ---

func TestResponse_Merge(t *testing.T) {
	a := NewResponse().AddText("a").AddMessageQuickReply("qa", "qa")
	b := NewResponse().AddText("b").AddMessageQuickReply("qb", "qb")

	ab := a.Merge(b)
	ba := b.Merge(a)

	abJSON, err := ab.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":"2.0","template":{
		"outputs":[{"simpleText":{"text":"a"}},{"simpleText":{"text":"b"}}],
		"quickReplies":[
			{"label":"qa","action":"message","messageText":"qa"},
			{"label":"qb","action":"message","messageText":"qb"}
		]}}`, string(abJSON))

	baJSON, err := ba.JSON()
	require.NoError(t, err)
	assert.NotEqual(t, string(abJSON), string(baJSON))

	assert.Len(t, a.Components(), 1, "merge must not modify the receiver")
}

func TestResponse_MergeIsAssociative(t *testing.T) {
	a := NewResponse().AddText("a")
	b := NewResponse().AddText("b").AddMessageQuickReply("q", "q")
	c := NewResponse().AddText("c")

	left, err := a.Merge(b).Merge(c).JSON()
	require.NoError(t, err)
	right, err := a.Merge(b.Merge(c)).JSON()
	require.NoError(t, err)
	assert.Equal(t, string(left), string(right))

	same, err := a.Merge(nil).JSON()
	require.NoError(t, err)
	orig, err := a.JSON()
	require.NoError(t, err)
	assert.Equal(t, string(orig), string(same))
}

// --- ValidationResponse tests ---

func TestValidationResponse(t *testing.T) {
	b, err := ValidationSuccess("김밥").JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"SUCCESS","value":"김밥"}`, string(b))

	b, err = ValidationFailure(StatusError, "메뉴는 5개까지만 등록할 수 있습니다.").JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ERROR","message":"메뉴는 5개까지만 등록할 수 있습니다."}`, string(b))

	b, err = (&ValidationResponse{Status: "fail"}).JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"FAIL"}`, string(b))

	_, err = (&ValidationResponse{Status: "MAYBE"}).JSON()
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestParseValidationStatus(t *testing.T) {
	for _, s := range []string{"success", "Fail", "ERROR", "ignore"} {
		_, err := ParseValidationStatus(s)
		assert.NoError(t, err, s)
	}
}
