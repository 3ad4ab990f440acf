package kakao

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wireJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func renderJSON(t *testing.T, c Component) string {
	t.Helper()
	w, err := c.Render()
	require.NoError(t, err)
	return wireJSON(t, w)
}

// --- Interaction tests ---

func TestInteraction_NoActionIsNoop(t *testing.T) {
	in := Interaction{MessageText: "ignored"}
	assert.NoError(t, in.validate(quickReplyActions))
	assert.Equal(t, `{}`, wireJSON(t, in.buildWire()))
}

func TestInteraction_MessageRendersOnlyItsFields(t *testing.T) {
	in := Interaction{
		Action:      ActionMessage,
		MessageText: "hi",
		WebLinkURL:  "https://example.com",
		BlockID:     "blk",
	}
	require.NoError(t, in.validate(buttonActions))
	assert.JSONEq(t, `{"action":"message","messageText":"hi"}`, wireJSON(t, in.buildWire()))
}

func TestInteraction_BlockOptionalMessage(t *testing.T) {
	in := Interaction{Action: ActionBlock, BlockID: "blk"}
	assert.JSONEq(t, `{"action":"block","blockId":"blk"}`, wireJSON(t, in.buildWire()))

	in.MessageText = "go"
	in.Extra = map[string]any{"id": "7"}
	assert.JSONEq(t,
		`{"action":"block","blockId":"blk","messageText":"go","extra":{"id":"7"}}`,
		wireJSON(t, in.buildWire()))
}

func TestInteraction_Validate(t *testing.T) {
	tests := []struct {
		name    string
		in      Interaction
		allowed []ActionKind
		wantErr error
	}{
		{"weblink ok", Interaction{Action: ActionWebLink, WebLinkURL: "https://x"}, buttonActions, nil},
		{"weblink missing url", Interaction{Action: ActionWebLink}, buttonActions, ErrInvalidType},
		{"phone missing number", Interaction{Action: ActionPhone}, buttonActions, ErrInvalidType},
		{"block missing id", Interaction{Action: ActionBlock, MessageText: "x"}, buttonActions, ErrInvalidType},
		{"share needs nothing", Interaction{Action: ActionShare}, buttonActions, nil},
		{"operator needs nothing", Interaction{Action: ActionOperator}, buttonActions, nil},
		{"phone not allowed on quick reply", Interaction{Action: ActionPhone, PhoneNumber: "010"}, quickReplyActions, ErrInvalidAction},
		{"weblink not allowed on list item", Interaction{Action: ActionWebLink, WebLinkURL: "https://x"}, listItemActions, ErrInvalidAction},
		{"unknown kind", Interaction{Action: ActionKind(42)}, buttonActions, ErrInvalidAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.in.validate(tt.allowed)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// --- Button / QuickReply tests ---

func TestButton_Constructors(t *testing.T) {
	tests := []struct {
		name   string
		button Button
		want   string
	}{
		{"weblink", NewWebLinkButton("열기", "https://sio2.pe.kr"), `{"label":"열기","action":"webLink","webLinkUrl":"https://sio2.pe.kr"}`},
		{"message", NewMessageButton("도움말", "도움말"), `{"label":"도움말","action":"message","messageText":"도움말"}`},
		{"phone", NewPhoneButton("전화", "010-0000-0000"), `{"label":"전화","action":"phone","phoneNumber":"010-0000-0000"}`},
		{"block", NewBlockButton("승인", "b1", "", map[string]any{"identification": "a"}), `{"label":"승인","action":"block","blockId":"b1","extra":{"identification":"a"}}`},
		{"share", NewShareButton("공유"), `{"label":"공유","action":"share"}`},
		{"operator", NewOperatorButton("상담원"), `{"label":"상담원","action":"operator"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, tt.button.validate())
			assert.JSONEq(t, tt.want, wireJSON(t, tt.button.buildWire()))
		})
	}
}

func TestButton_PhoneWithoutNumber(t *testing.T) {
	b := Button{Label: "call", Interaction: Interaction{Action: ActionPhone}}
	assert.ErrorIs(t, b.validate(), ErrInvalidType)
}

func TestButton_RequiresLabelAndAction(t *testing.T) {
	assert.ErrorIs(t, Button{Interaction: Interaction{Action: ActionShare}}.validate(), ErrInvalidType)
	assert.ErrorIs(t, Button{Label: "x"}.validate(), ErrInvalidAction)
}

func TestQuickReply(t *testing.T) {
	q := NewMessageQuickReply("바로가기 1", "바로가기 1 클릭")
	require.NoError(t, q.validate())
	assert.JSONEq(t,
		`{"label":"바로가기 1","action":"message","messageText":"바로가기 1 클릭"}`,
		wireJSON(t, q.buildWire()))

	bad := QuickReply{Label: "link", Interaction: Interaction{Action: ActionWebLink, WebLinkURL: "https://x"}}
	assert.ErrorIs(t, bad.validate(), ErrInvalidAction)

	assert.ErrorIs(t, QuickReply{Label: "none"}.validate(), ErrInvalidAction)
}
