package relay

import (
	"context"
	"fmt"
	"testing"

	"modmail/internal/app/thread"
	"modmail/internal/providers/platform"
	"modmail/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeThreadService struct {
	byChannel map[string]*thread.Thread
	byUser    map[string]*thread.Thread
}

func (f *fakeThreadService) FindOpenThread(_ context.Context, channelID string) (*thread.Thread, error) {
	return f.byChannel[channelID], nil
}

func (f *fakeThreadService) FindOpenThreadForUser(_ context.Context, userID string) (*thread.Thread, error) {
	return f.byUser[userID], nil
}

type fakeSettingsService struct {
	simple bool
	err    error
}

func (f *fakeSettingsService) SimpleMode(_ context.Context, _ string) (bool, error) {
	return f.simple, f.err
}

type sentMessage struct {
	recipient string
	msg       platform.OutboundMessage
}

type fakePlatform struct {
	members map[string]*platform.Member
	dms     []sentMessage
	posts   []sentMessage
	failDM  bool
}

func (f *fakePlatform) ResolveUser(_ context.Context, userID string) (*platform.User, error) {
	return nil, nil
}

func (f *fakePlatform) ResolveMember(_ context.Context, _, userID string) (*platform.Member, error) {
	return f.members[userID], nil
}

func (f *fakePlatform) SendDirectMessage(_ context.Context, userID string, msg platform.OutboundMessage) error {
	if f.failDM {
		return fmt.Errorf("dm rejected")
	}
	f.dms = append(f.dms, sentMessage{recipient: userID, msg: msg})
	return nil
}

func (f *fakePlatform) SendChannelMessage(_ context.Context, channelID string, msg platform.OutboundMessage) error {
	f.posts = append(f.posts, sentMessage{recipient: channelID, msg: msg})
	return nil
}

type fakeMirror struct {
	url   string
	err   error
	calls []string
}

func (f *fakeMirror) Mirror(_ context.Context, sourceURL, _ string) (string, error) {
	f.calls = append(f.calls, sourceURL)
	if f.err != nil {
		return "", f.err
	}
	return f.url, nil
}

type relayFixture struct {
	svc      Service
	platform *fakePlatform
	mirror   *fakeMirror
	settings *fakeSettingsService
}

func newRelayFixture(th *thread.Thread) *relayFixture {
	threads := &fakeThreadService{byChannel: map[string]*thread.Thread{}, byUser: map[string]*thread.Thread{}}
	pf := &fakePlatform{members: map[string]*platform.Member{}}
	if th != nil {
		threads.byChannel[th.ChannelID] = th
		threads.byUser[th.UserID] = th
		pf.members[th.UserID] = &platform.Member{
			User:    platform.User{ID: th.UserID, Username: "user-" + th.UserID},
			GuildID: th.GuildID,
		}
	}
	mirror := &fakeMirror{url: "https://files.example/mirrored.png"}
	settings := &fakeSettingsService{}
	svc := NewService(threads, settings, pf, mirror, utils.NewEventBus(), zap.NewNop())
	return &relayFixture{svc: svc, platform: pf, mirror: mirror, settings: settings}
}

func staffThread() *thread.Thread {
	return &thread.Thread{ID: 1, ChannelID: "C1", ThreadID: "T1", GuildID: "G1", UserID: "U1"}
}

func staffMessage() StaffMessage {
	return StaffMessage{
		ChannelID:   "C1",
		InvokerID:   "S1",
		InvokerName: "Moderator",
		AuthorID:    "S1",
		Content:     "hello there",
	}
}

func TestRelayStaffMessageDeliversToUser(t *testing.T) {
	f := newRelayFixture(staffThread())

	delivery, err := f.svc.RelayStaffMessage(context.Background(), staffMessage())
	require.NoError(t, err)
	require.NotNil(t, delivery)
	assert.Equal(t, "U1", delivery.RecipientID)
	assert.NotEmpty(t, delivery.ID)

	require.Len(t, f.platform.dms, 1)
	assert.Equal(t, "U1", f.platform.dms[0].recipient)
	require.NotNil(t, f.platform.dms[0].msg.Embed)
	assert.Equal(t, "Moderator", f.platform.dms[0].msg.Embed.Author)
	assert.Equal(t, "hello there", f.platform.dms[0].msg.Embed.Description)

	// A copy lands in the staff channel for the thread history.
	require.Len(t, f.platform.posts, 1)
	assert.Equal(t, "C1", f.platform.posts[0].recipient)
}

func TestRelayStaffMessageNoOpenThread(t *testing.T) {
	f := newRelayFixture(nil)

	_, err := f.svc.RelayStaffMessage(context.Background(), staffMessage())
	assert.ErrorIs(t, err, thread.ErrNoOpenThread)
	assert.Empty(t, f.platform.dms)
}

func TestRelayStaffMessageNotOwnContent(t *testing.T) {
	f := newRelayFixture(staffThread())

	msg := staffMessage()
	msg.AuthorID = "someone-else"

	_, err := f.svc.RelayStaffMessage(context.Background(), msg)
	assert.ErrorIs(t, err, ErrNotOwnContent)
	assert.Empty(t, f.platform.dms)
	assert.Empty(t, f.platform.posts)
}

func TestRelayStaffMessageRecipientUnresolvable(t *testing.T) {
	f := newRelayFixture(staffThread())
	delete(f.platform.members, "U1")

	_, err := f.svc.RelayStaffMessage(context.Background(), staffMessage())
	assert.ErrorIs(t, err, ErrRecipientUnresolvable)
	assert.Empty(t, f.platform.dms)
}

func TestRelayStaffMessageEmptyContentDespiteAttachment(t *testing.T) {
	f := newRelayFixture(staffThread())

	msg := staffMessage()
	msg.Content = "   "
	msg.Attachments = []Attachment{{URL: "https://cdn.example/a.png", FileName: "a.png"}}

	_, err := f.svc.RelayStaffMessage(context.Background(), msg)
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Empty(t, f.platform.dms)
	assert.Empty(t, f.mirror.calls, "attachments must not be mirrored when nothing is relayed")
}

func TestRelayStaffMessageOnlyFirstAttachment(t *testing.T) {
	f := newRelayFixture(staffThread())

	msg := staffMessage()
	msg.Attachments = []Attachment{
		{URL: "https://cdn.example/first.png", FileName: "first.png"},
		{URL: "https://cdn.example/second.png", FileName: "second.png"},
	}

	_, err := f.svc.RelayStaffMessage(context.Background(), msg)
	require.NoError(t, err)

	require.Len(t, f.mirror.calls, 1)
	assert.Equal(t, "https://cdn.example/first.png", f.mirror.calls[0])

	require.Len(t, f.platform.dms, 1)
	require.NotNil(t, f.platform.dms[0].msg.Embed)
	assert.Equal(t, f.mirror.url, f.platform.dms[0].msg.Embed.ImageURL)
	assert.NotContains(t, f.platform.dms[0].msg.Embed.ImageURL, "second")
}

func TestRelayStaffMessageAnonymousHidesSender(t *testing.T) {
	f := newRelayFixture(staffThread())

	msg := staffMessage()
	msg.Anonymous = true

	_, err := f.svc.RelayStaffMessage(context.Background(), msg)
	require.NoError(t, err)

	require.Len(t, f.platform.dms, 1)
	require.NotNil(t, f.platform.dms[0].msg.Embed)
	assert.Equal(t, "Staff", f.platform.dms[0].msg.Embed.Author)
	assert.NotContains(t, f.platform.dms[0].msg.Embed.Author, "Moderator")
}

func TestRelayStaffMessageSimpleMode(t *testing.T) {
	f := newRelayFixture(staffThread())
	f.settings.simple = true

	_, err := f.svc.RelayStaffMessage(context.Background(), staffMessage())
	require.NoError(t, err)

	require.Len(t, f.platform.dms, 1)
	assert.Nil(t, f.platform.dms[0].msg.Embed)
	assert.Equal(t, "**Moderator**: hello there", f.platform.dms[0].msg.Content)
}

func TestRelayStaffMessageDeliveryFailure(t *testing.T) {
	f := newRelayFixture(staffThread())
	f.platform.failDM = true

	_, err := f.svc.RelayStaffMessage(context.Background(), staffMessage())
	assert.ErrorIs(t, err, ErrDeliveryFailed)
}

func TestRelayStaffMessageMirrorFailureFallsBack(t *testing.T) {
	f := newRelayFixture(staffThread())
	f.mirror.err = fmt.Errorf("bucket unavailable")

	msg := staffMessage()
	msg.Attachments = []Attachment{{URL: "https://cdn.example/a.png", FileName: "a.png"}}

	_, err := f.svc.RelayStaffMessage(context.Background(), msg)
	require.NoError(t, err)

	require.Len(t, f.platform.dms, 1)
	require.NotNil(t, f.platform.dms[0].msg.Embed)
	assert.Equal(t, "https://cdn.example/a.png", f.platform.dms[0].msg.Embed.ImageURL)
}

func TestRelayUserMessagePostsIntoThreadChannel(t *testing.T) {
	f := newRelayFixture(staffThread())

	delivery, err := f.svc.RelayUserMessage(context.Background(), UserMessage{
		UserID:   "U1",
		UserName: "user-one",
		Content:  "I need help",
	})
	require.NoError(t, err)
	assert.Equal(t, "C1", delivery.ChannelID)

	require.Len(t, f.platform.posts, 1)
	assert.Equal(t, "C1", f.platform.posts[0].recipient)
	require.NotNil(t, f.platform.posts[0].msg.Embed)
	assert.Equal(t, "I need help", f.platform.posts[0].msg.Embed.Description)
	assert.Empty(t, f.platform.dms)
}

func TestRelayUserMessageEmptyContent(t *testing.T) {
	f := newRelayFixture(staffThread())

	_, err := f.svc.RelayUserMessage(context.Background(), UserMessage{
		UserID:  "U1",
		Content: "",
	})
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Empty(t, f.platform.posts)
}

func TestRelayUserMessageNoOpenThread(t *testing.T) {
	f := newRelayFixture(nil)

	_, err := f.svc.RelayUserMessage(context.Background(), UserMessage{
		UserID:  "U1",
		Content: "hello",
	})
	assert.ErrorIs(t, err, thread.ErrNoOpenThread)
}
