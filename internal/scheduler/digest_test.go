package scheduler

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/Dan9191/cashflow-dashboard/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSource struct {
	err error
}

func (s stubSource) MonthlyStatement(ctx context.Context, date time.Time) (*models.MonthlyStatement, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &models.MonthlyStatement{Date: date.Format("2006-01-02")}, nil
}

func (stubSource) Today() time.Time { return time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC) }

type stubMailer struct {
	sent []*models.MonthlyStatement
	to   []string
	err  error
}

func (m *stubMailer) SendStatementDigest(to []string, st *models.MonthlyStatement) error {
	if m.err != nil {
		return m.err
	}
	m.to = to
	m.sent = append(m.sent, st)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestDigest_Run(t *testing.T) {
	mailer := &stubMailer{}
	d, err := NewDigest("0 7 1 * *", stubSource{}, mailer, []string{"me@example.com"}, quietLogger())
	require.NoError(t, err)

	require.NoError(t, d.Run(context.Background()))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "2024-06-01", mailer.sent[0].Date)
	assert.Equal(t, []string{"me@example.com"}, mailer.to)
}

func TestDigest_RunFailures(t *testing.T) {
	d, err := NewDigest("@daily", stubSource{err: models.ErrDataUnavailable}, &stubMailer{}, nil, quietLogger())
	require.NoError(t, err)
	assert.ErrorIs(t, d.Run(context.Background()), models.ErrDataUnavailable)

	d, err = NewDigest("@daily", stubSource{}, &stubMailer{err: errors.New("smtp down")}, nil, quietLogger())
	require.NoError(t, err)
	assert.Error(t, d.Run(context.Background()))
}

func TestNewDigest_InvalidSpec(t *testing.T) {
	_, err := NewDigest("every tuesday", stubSource{}, &stubMailer{}, nil, quietLogger())
	assert.Error(t, err)
}

func TestDigest_StartStop(t *testing.T) {
	d, err := NewDigest("@monthly", stubSource{}, &stubMailer{}, nil, quietLogger())
	require.NoError(t, err)
	d.Start()
	d.Stop()
}
