package workflow

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/caxa-dev/doc-manager/backend/internal/domain"
	"github.com/stretchr/testify/require"
)

// fakeTaskStore mô phỏng ngữ nghĩa transaction của store thật: sổ lịch sử
// được ghi trước, nếu ghi sổ thất bại thì công việc không bị đụng đến.
type fakeTaskStore struct {
	tasks   map[int64]*domain.Task
	history *fakeHistoryStore
}

func (s *fakeTaskStore) Load(_ context.Context, id int64) (*domain.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *task
	return &copied, nil
}

func (s *fakeTaskStore) SaveWithHistory(ctx context.Context, task *domain.Task, entry *domain.TaskStatusHistory) error {
	if err := s.history.Append(ctx, entry); err != nil {
		return err
	}
	copied := *task
	s.tasks[task.ID] = &copied
	return nil
}

func (s *fakeTaskStore) DeleteWithHistory(ctx context.Context, id int64, entry *domain.TaskStatusHistory) error {
	if err := s.history.Append(ctx, entry); err != nil {
		return err
	}
	delete(s.tasks, id)
	return nil
}

type fakeHistoryStore struct {
	entries   []*domain.TaskStatusHistory
	appendErr error
}

func (s *fakeHistoryStore) Append(_ context.Context, entry *domain.TaskStatusHistory) error {
	if s.appendErr != nil {
		return s.appendErr
	}
	copied := *entry
	copied.ID = int64(len(s.entries) + 1)
	s.entries = append(s.entries, &copied)
	return nil
}

func (s *fakeHistoryStore) ListByTask(_ context.Context, taskID int64) ([]*domain.TaskStatusHistory, error) {
	result := []*domain.TaskStatusHistory{}
	for _, entry := range s.entries {
		if entry.TaskID == taskID {
			result = append(result, entry)
		}
	}
	return result, nil
}

type fakeUserDirectory struct {
	users map[int64]*domain.User
}

func (d *fakeUserDirectory) GetUser(_ context.Context, id int64) (*domain.User, error) {
	user, ok := d.users[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

const (
	secretaryID  int64 = 1
	teamLeaderID int64 = 2
	deputyID     int64 = 3
	deputy2ID    int64 = 4
	officerID    int64 = 5
	officer2ID   int64 = 6
	adminID      int64 = 7
	inactiveID   int64 = 8
)

type testEnv struct {
	engine  *Engine
	tasks   *fakeTaskStore
	history *fakeHistoryStore
}

func newTestEnv(t *testing.T, task *domain.Task) *testEnv {
	t.Helper()

	users := &fakeUserDirectory{users: map[int64]*domain.User{
		secretaryID:  {ID: secretaryID, Role: domain.RoleSecretary, IsActive: true},
		teamLeaderID: {ID: teamLeaderID, Role: domain.RoleTeamLeader, IsActive: true},
		deputyID:     {ID: deputyID, Role: domain.RoleDeputy, IsActive: true},
		deputy2ID:    {ID: deputy2ID, Role: domain.RoleDeputy, IsActive: true},
		officerID:    {ID: officerID, Role: domain.RoleOfficer, IsActive: true},
		officer2ID:   {ID: officer2ID, Role: domain.RoleOfficer, IsActive: true},
		adminID:      {ID: adminID, Role: domain.RoleAdmin, IsActive: true},
		inactiveID:   {ID: inactiveID, Role: domain.RoleOfficer, IsActive: false},
	}}

	history := &fakeHistoryStore{}
	tasks := &fakeTaskStore{tasks: map[int64]*domain.Task{}, history: history}
	if task != nil {
		tasks.tasks[task.ID] = task
	}

	engine := NewEngine(tasks, history, users)

	// Đồng hồ giả tăng dần để kiểm tra được thứ tự thời gian trong sổ lịch sử.
	current := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	engine.now = func() time.Time {
		current = current.Add(time.Second)
		return current
	}

	return &testEnv{engine: engine, tasks: tasks, history: history}
}

func newTask(status domain.TaskStatus, createdBy int64, assignedTo *int64) *domain.Task {
	return &domain.Task{
		ID:           100,
		Description:  "Xử lý văn bản đến số 42",
		Status:       status,
		CreatedByID:  createdBy,
		AssignedToID: assignedTo,
	}
}

func ptr(id int64) *int64 { return &id }

func requireWorkflowError(t *testing.T, err error, kind ErrorKind) *Error {
	t.Helper()
	require.Error(t, err)
	wfErr, ok := err.(*Error)
	require.True(t, ok, "muốn *workflow.Error, nhận được %T", err)
	require.Equal(t, kind, wfErr.Kind)
	return wfErr
}

func TestSecretaryAssignsNotStartedTask(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusNotStarted, secretaryID, nil))

	result, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpAssign,
		ActorID:      secretaryID,
		TaskID:       100,
		TargetUserID: ptr(teamLeaderID),
	})
	require.NoError(t, err)

	require.Equal(t, domain.StatusReceived, result.Task.Status)
	require.NotNil(t, result.Task.AssignedToID)
	require.Equal(t, teamLeaderID, *result.Task.AssignedToID)

	require.Nil(t, result.History.OldStatus)
	require.Equal(t, domain.StatusReceived, result.History.NewStatus)
	require.True(t, result.History.AssigneeChanged)
}

func TestReassignmentIsIdempotent(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(teamLeaderID)))

	first, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpAssign,
		ActorID:      secretaryID,
		TaskID:       100,
		TargetUserID: ptr(deputyID),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress, first.Task.Status)
	require.Equal(t, deputyID, *first.Task.AssignedToID)
	require.True(t, first.History.AssigneeChanged)

	second, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpAssign,
		ActorID:      secretaryID,
		TaskID:       100,
		TargetUserID: ptr(deputyID),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress, second.Task.Status)
	require.Equal(t, deputyID, *second.Task.AssignedToID)
	require.False(t, second.History.AssigneeChanged)

	// Mỗi lần gọi đều thêm đúng một bản ghi vào sổ lịch sử.
	entries, err := env.engine.ListHistory(context.Background(), 100)
	require.NoError(t, err)
	require.Len(t, entries, 2)
}

func TestOfficerSubmitsForReview(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(officerID)))

	result, err := env.engine.Execute(context.Background(), Request{
		Operation: OpSubmitForReview,
		ActorID:   officerID,
		TaskID:    100,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusUnderReview, result.Task.Status)

	// Gửi lại lần nữa phải bị từ chối vì trạng thái không còn hợp lệ.
	_, err = env.engine.Execute(context.Background(), Request{
		Operation: OpSubmitForReview,
		ActorID:   officerID,
		TaskID:    100,
	})
	wfErr := requireWorkflowError(t, err, KindInvalidTransition)
	require.Equal(t, domain.StatusUnderReview, wfErr.Current)
	require.Equal(t, OpSubmitForReview, wfErr.Attempted)
}

func TestDeputyForwardsToAnotherDeputy(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(deputyID)))

	result, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpForward,
		ActorID:      deputyID,
		TaskID:       100,
		TargetUserID: ptr(deputy2ID),
	})
	require.NoError(t, err)

	require.Equal(t, domain.StatusInProgress, result.Task.Status)
	require.Equal(t, deputy2ID, *result.Task.AssignedToID)

	require.NotNil(t, result.History.OldStatus)
	require.Equal(t, domain.StatusInProgress, *result.History.OldStatus)
	require.Equal(t, domain.StatusInProgress, result.History.NewStatus)
	require.True(t, result.History.AssigneeChanged)
}

func TestNoOperationLeavesCompleted(t *testing.T) {
	operations := []struct {
		op     Operation
		actor  int64
		target *int64
	}{
		{OpAssign, secretaryID, ptr(teamLeaderID)},
		{OpDelegate, teamLeaderID, ptr(officerID)},
		{OpForward, teamLeaderID, ptr(deputyID)},
		{OpSubmitForReview, officerID, nil},
		{OpReviewApprove, teamLeaderID, nil},
		{OpReviewReject, teamLeaderID, nil},
		{OpEdit, secretaryID, nil},
		{OpDelete, secretaryID, nil},
	}

	for _, tc := range operations {
		t.Run(string(tc.op), func(t *testing.T) {
			task := newTask(domain.StatusCompleted, teamLeaderID, ptr(officerID))
			// Ủy quyền và gửi xem xét yêu cầu người thực hiện phải là người
			// đang được gán, để lỗi trả về chắc chắn do trạng thái kết thúc.
			if tc.op == OpDelegate || tc.op == OpSubmitForReview {
				task.AssignedToID = ptr(tc.actor)
			}
			env := newTestEnv(t, task)

			_, err := env.engine.Execute(context.Background(), Request{
				Operation:    tc.op,
				ActorID:      tc.actor,
				TaskID:       100,
				TargetUserID: tc.target,
			})
			requireWorkflowError(t, err, KindInvalidTransition)

			// Công việc không bị thay đổi.
			stored := env.tasks.tasks[100]
			require.NotNil(t, stored)
			require.Equal(t, domain.StatusCompleted, stored.Status)
			require.Empty(t, env.history.entries)
		})
	}
}

func TestForbiddenReturnedBeforeInvalidTransition(t *testing.T) {
	// Cả quyền lẫn chuyển trạng thái đều sai: Cán bộ không được ủy quyền và
	// công việc đang ở trạng thái Xem xét. Lỗi trả về phải là Forbidden.
	env := newTestEnv(t, newTask(domain.StatusUnderReview, secretaryID, ptr(officerID)))

	_, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpDelegate,
		ActorID:      officerID,
		TaskID:       100,
		TargetUserID: ptr(officer2ID),
	})
	wfErr := requireWorkflowError(t, err, KindForbidden)
	require.Equal(t, ReasonRoleNotPermitted, wfErr.Reason)
}

func TestDelegateToCurrentAssigneeRejected(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(teamLeaderID)))

	_, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpDelegate,
		ActorID:      teamLeaderID,
		TaskID:       100,
		TargetUserID: ptr(teamLeaderID),
	})
	wfErr := requireWorkflowError(t, err, KindForbidden)
	require.Equal(t, ReasonSelfTarget, wfErr.Reason)
}

func TestForwardToCurrentAssigneeRejected(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, teamLeaderID, ptr(deputyID)))

	_, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpForward,
		ActorID:      teamLeaderID,
		TaskID:       100,
		TargetUserID: ptr(deputyID),
	})
	wfErr := requireWorkflowError(t, err, KindForbidden)
	require.Equal(t, ReasonSelfTarget, wfErr.Reason)
}

func TestTeamLeaderCannotDeleteOthersTask(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(officerID)))

	_, err := env.engine.Execute(context.Background(), Request{
		Operation: OpDelete,
		ActorID:   teamLeaderID,
		TaskID:    100,
	})
	wfErr := requireWorkflowError(t, err, KindForbidden)
	require.Equal(t, ReasonNotOwner, wfErr.Reason)

	_, ok := env.tasks.tasks[100]
	require.True(t, ok, "công việc không được bị xóa")
}

func TestOfficerCannotDelegate(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(officerID)))

	_, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpDelegate,
		ActorID:      officerID,
		TaskID:       100,
		TargetUserID: ptr(officer2ID),
	})
	wfErr := requireWorkflowError(t, err, KindForbidden)
	require.Equal(t, ReasonRoleNotPermitted, wfErr.Reason)
}

func TestDelegateFromReceivedStartsProgress(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusReceived, secretaryID, ptr(teamLeaderID)))

	result, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpDelegate,
		ActorID:      teamLeaderID,
		TaskID:       100,
		TargetUserID: ptr(officerID),
		Note:         "Giao anh xử lý gấp",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress, result.Task.Status)
	require.Equal(t, officerID, *result.Task.AssignedToID)
	require.Equal(t, "Giao anh xử lý gấp", result.History.Note)
}

func TestReviewApproveAndReject(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusUnderReview, teamLeaderID, ptr(officerID)))

	rejected, err := env.engine.Execute(context.Background(), Request{
		Operation: OpReviewReject,
		ActorID:   teamLeaderID,
		TaskID:    100,
		Note:      "Báo cáo chưa đầy đủ",
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress, rejected.Task.Status)

	// Gửi lại và duyệt.
	_, err = env.engine.Execute(context.Background(), Request{
		Operation: OpSubmitForReview,
		ActorID:   officerID,
		TaskID:    100,
	})
	require.NoError(t, err)

	approved, err := env.engine.Execute(context.Background(), Request{
		Operation: OpReviewApprove,
		ActorID:   teamLeaderID,
		TaskID:    100,
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, approved.Task.Status)
	require.NotNil(t, approved.Task.CompletionDate)
}

func TestLedgerRecordsEveryAcceptedOperationInOrder(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusNotStarted, secretaryID, nil))
	ctx := context.Background()

	steps := []Request{
		{Operation: OpAssign, ActorID: secretaryID, TaskID: 100, TargetUserID: ptr(teamLeaderID)},
		{Operation: OpDelegate, ActorID: teamLeaderID, TaskID: 100, TargetUserID: ptr(officerID)},
		{Operation: OpSubmitForReview, ActorID: officerID, TaskID: 100},
		{Operation: OpReviewApprove, ActorID: teamLeaderID, TaskID: 100},
	}

	for _, req := range steps {
		_, err := env.engine.Execute(ctx, req)
		require.NoError(t, err)
	}

	entries, err := env.engine.ListHistory(ctx, 100)
	require.NoError(t, err)
	require.Len(t, entries, len(steps))

	for i := 1; i < len(entries); i++ {
		require.True(t, entries[i].CreatedAt.After(entries[i-1].CreatedAt),
			"các bản ghi phải theo thứ tự thời gian tăng dần")
	}

	require.Equal(t, domain.StatusCompleted, entries[len(entries)-1].NewStatus)
}

func TestInactiveActorRejected(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(inactiveID)))

	_, err := env.engine.Execute(context.Background(), Request{
		Operation: OpSubmitForReview,
		ActorID:   inactiveID,
		TaskID:    100,
	})
	requireWorkflowError(t, err, KindInactive)
}

func TestInactiveTargetRejected(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(teamLeaderID)))

	_, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpDelegate,
		ActorID:      teamLeaderID,
		TaskID:       100,
		TargetUserID: ptr(inactiveID),
	})
	requireWorkflowError(t, err, KindInactive)
}

func TestMissingTaskReturnsNotFound(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.engine.Execute(context.Background(), Request{
		Operation: OpEdit,
		ActorID:   secretaryID,
		TaskID:    999,
	})
	requireWorkflowError(t, err, KindNotFound)
}

func TestValidationErrors(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusNotStarted, secretaryID, nil))

	t.Run("thiếu người nhận", func(t *testing.T) {
		_, err := env.engine.Execute(context.Background(), Request{
			Operation: OpAssign,
			ActorID:   secretaryID,
			TaskID:    100,
		})
		requireWorkflowError(t, err, KindValidation)
	})

	t.Run("ghi chú quá dài", func(t *testing.T) {
		note := make([]rune, MaxNoteLength+1)
		for i := range note {
			note[i] = 'a'
		}
		_, err := env.engine.Execute(context.Background(), Request{
			Operation:    OpAssign,
			ActorID:      secretaryID,
			TaskID:       100,
			TargetUserID: ptr(teamLeaderID),
			Note:         string(note),
		})
		requireWorkflowError(t, err, KindValidation)
	})

	t.Run("thao tác không hợp lệ", func(t *testing.T) {
		_, err := env.engine.Execute(context.Background(), Request{
			Operation: Operation("promote"),
			ActorID:   secretaryID,
			TaskID:    100,
		})
		requireWorkflowError(t, err, KindValidation)
	})
}

func TestAdminAssignMirrorsSecretary(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(teamLeaderID)))

	// Quản trị viên được gán lại bất kể trạng thái, giống Văn thư.
	result, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpAssign,
		ActorID:      adminID,
		TaskID:       100,
		TargetUserID: ptr(deputyID),
	})
	require.NoError(t, err)
	require.Equal(t, domain.StatusInProgress, result.Task.Status)
	require.Equal(t, deputyID, *result.Task.AssignedToID)
}

func TestAdminNeverAnAssignmentTarget(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusNotStarted, secretaryID, nil))

	_, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpAssign,
		ActorID:      secretaryID,
		TaskID:       100,
		TargetUserID: ptr(adminID),
	})
	wfErr := requireWorkflowError(t, err, KindForbidden)
	require.Equal(t, ReasonRoleNotPermitted, wfErr.Reason)
}

func TestFailedOperationLeavesNoTrace(t *testing.T) {
	task := newTask(domain.StatusInProgress, secretaryID, ptr(officerID))
	env := newTestEnv(t, task)

	_, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpForward,
		ActorID:      officerID,
		TaskID:       100,
		TargetUserID: ptr(officer2ID), // Cán bộ không được chuyển tiếp cho Cán bộ
	})
	requireWorkflowError(t, err, KindForbidden)

	stored := env.tasks.tasks[100]
	require.Equal(t, domain.StatusInProgress, stored.Status)
	require.Equal(t, officerID, *stored.AssignedToID)
	require.Empty(t, env.history.entries)
}

func TestLedgerWriteFailureRollsBackAssignment(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusNotStarted, secretaryID, nil))
	env.history.appendErr = errors.New("mất kết nối cơ sở dữ liệu")

	_, err := env.engine.Execute(context.Background(), Request{
		Operation:    OpAssign,
		ActorID:      secretaryID,
		TaskID:       100,
		TargetUserID: ptr(teamLeaderID),
	})
	require.Error(t, err)

	// Không được có thay đổi nửa vời: công việc giữ nguyên trạng thái và
	// người xử lý, sổ lịch sử trống.
	stored := env.tasks.tasks[100]
	require.Equal(t, domain.StatusNotStarted, stored.Status)
	require.Nil(t, stored.AssignedToID)
	require.Empty(t, env.history.entries)
}

func TestLedgerWriteFailureRollsBackDeletion(t *testing.T) {
	env := newTestEnv(t, newTask(domain.StatusInProgress, secretaryID, ptr(officerID)))
	env.history.appendErr = errors.New("mất kết nối cơ sở dữ liệu")

	_, err := env.engine.Execute(context.Background(), Request{
		Operation: OpDelete,
		ActorID:   secretaryID,
		TaskID:    100,
	})
	require.Error(t, err)

	_, ok := env.tasks.tasks[100]
	require.True(t, ok, "công việc không được bị xóa khi ghi sổ thất bại")
	require.Empty(t, env.history.entries)
}

func TestLedgerRecordsNotStartedAsOldStatusExceptFirstAssign(t *testing.T) {
	// Chỉ lần giao việc đầu tiên mới có OldStatus nil; sửa nội dung một công
	// việc chưa bắt đầu vẫn phải ghi lại trạng thái trước đó.
	env := newTestEnv(t, newTask(domain.StatusNotStarted, secretaryID, nil))

	result, err := env.engine.Execute(context.Background(), Request{
		Operation: OpEdit,
		ActorID:   secretaryID,
		TaskID:    100,
	})
	require.NoError(t, err)

	require.NotNil(t, result.History.OldStatus)
	require.Equal(t, domain.StatusNotStarted, *result.History.OldStatus)
	require.Equal(t, domain.StatusNotStarted, result.History.NewStatus)
}
