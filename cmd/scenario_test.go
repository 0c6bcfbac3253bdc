package cmd_test

import (
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"workorders/cmd"
	"workorders/internal/adapters/out/postgres/notificationrepo"
	"workorders/internal/adapters/out/postgres/orderrepo"
	"workorders/internal/core/application/usecases/commands"
	"workorders/internal/core/application/usecases/queries"
	"workorders/internal/core/domain/model/kernel"
	"workorders/internal/core/domain/model/notification"
	"workorders/internal/core/domain/model/order"
	"workorders/internal/core/domain/model/user"
	"workorders/internal/pkg/clock"
	"workorders/internal/pkg/errs"
	"workorders/internal/testutil"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMessage struct {
	chatID    int64
	messageID int
	text      string
}

// recordingBot stands in for the Bot API: it numbers sent messages and remembers deletions.
type recordingBot struct {
	mu      sync.Mutex
	nextID  int
	sent    []sentMessage
	deleted map[int]bool
}

func newRecordingBot() *recordingBot {
	return &recordingBot{deleted: map[int]bool{}}
}

func (b *recordingBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, nil
	}
	b.nextID++
	b.sent = append(b.sent, sentMessage{chatID: msg.ChatID, messageID: b.nextID, text: msg.Text})
	return tgbotapi.Message{MessageID: b.nextID, Chat: &tgbotapi.Chat{ID: msg.ChatID}}, nil
}

func (b *recordingBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if del, ok := c.(tgbotapi.DeleteMessageConfig); ok {
		b.deleted[del.MessageID] = true
	}
	return &tgbotapi.APIResponse{Ok: true}, nil
}

// live returns the texts of messages in chatID that have not been deleted.
func (b *recordingBot) live(chatID int64) []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	var out []string
	for _, m := range b.sent {
		if m.chatID == chatID && !b.deleted[m.messageID] {
			out = append(out, m.text)
		}
	}
	return out
}

const (
	creator = kernel.UserID("100")
	alice   = kernel.UserID("201")
	bob     = kernel.UserID("202")
)

func TestOrderLifecycleScenario(t *testing.T) {
	ctx := t.Context()
	db := testutil.NewSQLite(t)
	bot := newRecordingBot()
	clk := clock.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	root := cmd.NewCompositionRoot(cmd.Config{
		NotifyTimeout:           5 * time.Second,
		NotifyParallelism:       4,
		AutoArchiveEvery:        time.Hour,
		AutoArchiveAfter:        12 * time.Hour,
		PurgeEvery:              time.Hour,
		PurgeArchivedAfter:      30 * 24 * time.Hour,
		PurgeNotificationsAfter: 7 * 24 * time.Hour,
	}, db, bot, clk, logger)

	register := root.CreateRegisterUserCommandHandler()
	for id, role := range map[kernel.UserID]user.Role{creator: user.RoleCreator, alice: user.RoleWorker, bob: user.RoleWorker} {
		reg, err := commands.NewRegisterUserCommand(id, role, "user "+id.String())
		require.NoError(t, err)
		require.NoError(t, register.Handle(ctx, reg))
	}

	ledger := notificationrepo.NewGormNotificationRepository(db)
	recordsOf := func(id kernel.OrderID, class notification.Class) int {
		records, err := ledger.ListByOrder(ctx, id, class)
		require.NoError(t, err)
		return len(records)
	}

	// Workers may not create orders.
	deadline := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)
	items := []commands.LineItemInput{{Product: "Enamel", Color: "White", Quantity: 3}}
	byWorker, err := commands.NewCreateOrderCommand(alice, items, true, &deadline)
	require.NoError(t, err)
	_, err = root.CreateCreateOrderCommandHandler().Handle(ctx, byWorker)
	require.ErrorIs(t, err, errs.ErrNotAuthorized)

	// Create: every worker gets a claim message.
	create, err := commands.NewCreateOrderCommand(creator, items, true, &deadline)
	require.NoError(t, err)
	id, err := root.CreateCreateOrderCommandHandler().Handle(ctx, create)
	require.NoError(t, err)
	assert.Equal(t, 2, recordsOf(id, notification.Available))
	require.Len(t, bot.live(201), 1)
	require.Len(t, bot.live(202), 1)
	assert.True(t, strings.HasPrefix(bot.live(201)[0], "🔔 New order"))

	urgentTab, err := queries.NewListWorkerOrdersQuery(bob, queries.TabUrgent)
	require.NoError(t, err)
	views, err := root.CreateListWorkerOrdersQueryHandler().Handle(ctx, urgentTab)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, []order.Action{order.ActionClaim}, views[0].Actions)

	// Claim: alice wins, bob loses, claim messages are gone everywhere.
	clk.Advance(time.Minute)
	claimByAlice, err := commands.NewClaimOrderCommand(id, alice)
	require.NoError(t, err)
	require.NoError(t, root.CreateClaimOrderCommandHandler().Handle(ctx, claimByAlice))

	claimByBob, err := commands.NewClaimOrderCommand(id, bob)
	require.NoError(t, err)
	require.ErrorIs(t, root.CreateClaimOrderCommandHandler().Handle(ctx, claimByBob), errs.ErrConflict)

	assert.Zero(t, recordsOf(id, notification.Available))
	assert.Equal(t, 1, recordsOf(id, notification.Claimed))
	assert.Empty(t, bot.live(202))
	require.Len(t, bot.live(201), 1)
	assert.True(t, strings.HasPrefix(bot.live(201)[0], "✅ Order"))

	// Complete: only the assignee may, the creator hears about it.
	clk.Advance(time.Hour)
	completeByBob, err := commands.NewCompleteOrderCommand(id, bob)
	require.NoError(t, err)
	require.ErrorIs(t, root.CreateCompleteOrderCommandHandler().Handle(ctx, completeByBob), errs.ErrConflict)

	completeByAlice, err := commands.NewCompleteOrderCommand(id, alice)
	require.NoError(t, err)
	require.NoError(t, root.CreateCompleteOrderCommandHandler().Handle(ctx, completeByAlice))

	assert.Zero(t, recordsOf(id, notification.Claimed))
	assert.Empty(t, bot.live(201))
	require.Len(t, bot.live(100), 1)
	assert.Contains(t, bot.live(100)[0], "completed by user 201")

	doneTab, err := queries.NewListWorkerOrdersQuery(alice, queries.TabDone)
	require.NoError(t, err)
	views, err = root.CreateListWorkerOrdersQueryHandler().Handle(ctx, doneTab)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, order.Completed, views[0].Status)

	// Auto-archive only after the configured age.
	archived, err := root.CreateAutoArchiveJob().RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, archived)

	clk.Advance(13 * time.Hour)
	archived, err = root.CreateAutoArchiveJob().RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, archived)

	// Unarchive and archive by hand round-trip.
	unarchive, err := commands.NewUnarchiveOrderCommand(id, creator)
	require.NoError(t, err)
	require.NoError(t, root.CreateUnarchiveOrderCommandHandler().Handle(ctx, unarchive))
	archive, err := commands.NewArchiveOrderCommand(id, creator)
	require.NoError(t, err)
	require.NoError(t, root.CreateArchiveOrderCommandHandler().Handle(ctx, archive))

	creatorList, err := queries.NewListCreatorOrdersQuery(creator, []order.Status{order.Archived}, false)
	require.NoError(t, err)
	views, err = root.CreateListCreatorOrdersQueryHandler().Handle(ctx, creatorList)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.NotNil(t, views[0].ArchivedAt)

	// Cancel is not possible from archived.
	cancel, err := commands.NewCancelOrderCommand(id, creator, "too late")
	require.NoError(t, err)
	require.ErrorIs(t, root.CreateCancelOrderCommandHandler().Handle(ctx, cancel), errs.ErrConflict)

	// Purge once the archive is old enough.
	clk.Advance(31 * 24 * time.Hour)
	result, err := root.CreatePurgeJob().RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Orders)

	_, err = orderrepo.NewGormOrderRepository(db).Get(ctx, id)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestCancelRetractsOutstandingMessages(t *testing.T) {
	ctx := t.Context()
	db := testutil.NewSQLite(t)
	bot := newRecordingBot()
	clk := clock.NewManual(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	root := cmd.NewCompositionRoot(cmd.Config{NotifyTimeout: 5 * time.Second, NotifyParallelism: 2}, db, bot, clk, logger)

	register := root.CreateRegisterUserCommandHandler()
	for id, role := range map[kernel.UserID]user.Role{creator: user.RoleCreator, alice: user.RoleWorker} {
		reg, err := commands.NewRegisterUserCommand(id, role, id.String())
		require.NoError(t, err)
		require.NoError(t, register.Handle(ctx, reg))
	}

	create, err := commands.NewCreateOrderCommand(creator,
		[]commands.LineItemInput{{Product: "Primer", Color: "Grey", Quantity: 1}}, false, nil)
	require.NoError(t, err)
	id, err := root.CreateCreateOrderCommandHandler().Handle(ctx, create)
	require.NoError(t, err)
	require.Len(t, bot.live(201), 1)

	cancelByWorker, err := commands.NewCancelOrderCommand(id, alice, "")
	require.NoError(t, err)
	require.ErrorIs(t, root.CreateCancelOrderCommandHandler().Handle(ctx, cancelByWorker), errs.ErrNotAuthorized)

	cancel, err := commands.NewCancelOrderCommand(id, creator, "  wrong colour  ")
	require.NoError(t, err)
	require.NoError(t, root.CreateCancelOrderCommandHandler().Handle(ctx, cancel))
	assert.Empty(t, bot.live(201))

	o, err := orderrepo.NewGormOrderRepository(db).Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, order.Canceled, o.Status())
	assert.Equal(t, "wrong colour", o.CancelReason())

	// Terminal: a second cancel conflicts.
	require.ErrorIs(t, root.CreateCancelOrderCommandHandler().Handle(ctx, cancel), errs.ErrConflict)
}
