package attendance_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"
	"time"

	"go-gym/internal/attendance"
	attendanceerrors "go-gym/internal/attendance/errors"
	"go-gym/internal/attendance/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

func mustToken(t *testing.T, memberID string) []byte {
	t.Helper()
	raw, err := json.Marshal(attendance.NewQRToken(memberID, "Jane Doe", time.Now().UTC()))
	require.NoError(t, err)
	return raw
}

func TestService_ScanQR_ChecksIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New().String()
	memberID := uuid.New().String()

	repo := mock.NewMockRepository(ctrl)
	nonces := mock.NewMockNonceGuard(ctrl)

	nonces.EXPECT().Claim(gomock.Any(), gomock.Any(), 2*attendance.QRTokenTTL).Return(true, nil)

	// Toggle probe sees no active session, then the transactional
	// check-in path runs.
	repo.EXPECT().FindActive(gomock.Any(), branchID, memberID, gomock.Any()).
		Return(nil, gorm.ErrRecordNotFound)
	repo.EXPECT().WithTx(gomock.Any()).DoAndReturn(func(tx *sql.Tx) attendance.Repository { return repo })
	repo.EXPECT().FindMemberRef(gomock.Any(), memberID).
		Return(&attendance.MemberRef{ID: uuid.MustParse(memberID), FirstName: "Jane", Status: "active"}, nil)
	repo.EXPECT().FindActive(gomock.Any(), branchID, memberID, gomock.Any()).
		Return(nil, gorm.ErrRecordNotFound)

	var created attendance.Attendance
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, a *attendance.Attendance) error {
			created = *a
			return nil
		})

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	svc := attendance.NewService(db, repo, nonces, nil)
	result, err := svc.ScanQR(context.Background(), branchID, mustToken(t, memberID), "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, attendance.SourceQRScan, created.Source)
	assert.Equal(t, attendance.StatusActive, created.Status)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestService_ScanQR_ChecksOutActiveSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	db, dbmock, _ := sqlmock.New()
	defer db.Close()

	branchID := uuid.New().String()
	memberID := uuid.New().String()

	active := attendance.Attendance{
		ID:       uuid.New(),
		BranchID: uuid.MustParse(branchID),
		MemberID: uuid.MustParse(memberID),
		CheckIn:  time.Now().UTC().Add(-90 * time.Minute),
		Status:   attendance.StatusActive,
	}

	repo := mock.NewMockRepository(ctrl)
	nonces := mock.NewMockNonceGuard(ctrl)

	nonces.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

	repo.EXPECT().FindActive(gomock.Any(), branchID, memberID, gomock.Any()).
		Return(&active, nil)
	repo.EXPECT().WithTx(gomock.Any()).DoAndReturn(func(tx *sql.Tx) attendance.Repository { return repo })
	repo.EXPECT().FindActive(gomock.Any(), branchID, memberID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, bid, mid string, day time.Time) (*attendance.Attendance, error) {
			row := active
			return &row, nil
		})

	var updated attendance.Attendance
	repo.EXPECT().Update(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, a *attendance.Attendance) error {
			updated = *a
			return nil
		})

	dbmock.ExpectBegin()
	dbmock.ExpectCommit()

	svc := attendance.NewService(db, repo, nonces, nil)
	result, err := svc.ScanQR(context.Background(), branchID, mustToken(t, memberID), "")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, attendance.StatusCompleted, updated.Status)
	require.NotNil(t, updated.TotalHours)
	assert.InDelta(t, 1.5, *updated.TotalHours, 0.05)
	assert.NoError(t, dbmock.ExpectationsWereMet())
}

func TestService_ScanQR_ReplayedNonce(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockRepository(ctrl)
	nonces := mock.NewMockNonceGuard(ctrl)

	nonces.EXPECT().Claim(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

	svc := attendance.NewService(nil, repo, nonces, nil)
	_, err := svc.ScanQR(context.Background(), uuid.New().String(), mustToken(t, uuid.New().String()), "")
	assert.ErrorIs(t, err, attendanceerrors.ErrQRCodeReplayed)
}

func TestService_ScanQR_ExpiredToken(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mock.NewMockRepository(ctrl)
	nonces := mock.NewMockNonceGuard(ctrl)

	expired := attendance.QRToken{
		Purpose:   attendance.QRPurpose,
		MemberID:  uuid.New().String(),
		IssuedAt:  time.Now().UTC().Add(-5 * time.Minute),
		Nonce:     uuid.New().String(),
		ExpiresAt: time.Now().UTC().Add(-4 * time.Minute),
	}
	raw, err := json.Marshal(expired)
	require.NoError(t, err)

	svc := attendance.NewService(nil, repo, nonces, nil)
	_, err = svc.ScanQR(context.Background(), uuid.New().String(), raw, "")
	assert.ErrorIs(t, err, attendanceerrors.ErrQRCodeExpired)
}
