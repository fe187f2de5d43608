package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"smart-fuel-crm/internal/models"
	"smart-fuel-crm/internal/repository"
	"smart-fuel-crm/internal/status"
)

func str(s string) *string { return &s }

func contracted(v string) bool { return v == status.FleetContracted }

func TestAggregateThreeClients(t *testing.T) {
	sum := Aggregate([]*string{str("جديد"), str("تم التعاقد"), str("تم التعاقد")}, status.FleetNew, contracted)

	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.Converted)
	assert.Equal(t, 66.7, sum.ConversionRate)
	assert.Equal(t, "66.7", sum.ConversionRateDisplay)
	assert.Equal(t, []Group{{Name: "تم التعاقد", Count: 2}, {Name: "جديد", Count: 1}}, sum.Groups)
}

func TestAggregateNullGroupsUseDefault(t *testing.T) {
	groups := make([]*string, 0, 10)
	for i := 0; i < 3; i++ {
		groups = append(groups, str(status.FleetContracted))
	}
	for i := 0; i < 7; i++ {
		groups = append(groups, nil)
	}

	sum := Aggregate(groups, status.FleetNew, contracted)
	assert.Equal(t, 10, sum.Total)
	assert.Equal(t, "30.0", sum.ConversionRateDisplay)
	assert.Equal(t, Group{Name: status.FleetNew, Count: 7}, sum.Groups[0])
}

func TestAggregateEmpty(t *testing.T) {
	sum := Aggregate(nil, status.FleetNew, contracted)
	assert.Zero(t, sum.Total)
	assert.Zero(t, sum.ConversionRate)
	assert.Equal(t, "0.0", sum.ConversionRateDisplay)
	assert.Empty(t, sum.Groups)
}

func TestConversionRateZeroTotal(t *testing.T) {
	assert.Equal(t, 0.0, ConversionRate(0, 0))
	assert.Equal(t, 50.0, ConversionRate(1, 2))
}

func TestParseRange(t *testing.T) {
	assert.Equal(t, LastMonth, ParseRange("last_month"))
	assert.Equal(t, ThisMonth, ParseRange(""))
	assert.Equal(t, ThisMonth, ParseRange("forever"))
}

func TestResolve(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 30, 0, 0, time.UTC)

	b := ThisMonth.Resolve(now)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), *b.Start)
	assert.Equal(t, time.Date(2026, 3, 31, 23, 59, 59, 999999999, time.UTC), *b.End)

	b = LastMonth.Resolve(now)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), *b.Start)
	assert.Equal(t, time.Date(2026, 2, 28, 23, 59, 59, 999999999, time.UTC), *b.End)

	b = Last90Days.Resolve(now)
	assert.Equal(t, time.Date(2025, 12, 15, 0, 0, 0, 0, time.UTC), *b.Start)
	assert.Equal(t, time.Date(2026, 3, 15, 23, 59, 59, 999999999, time.UTC), *b.End)

	b = AllTime.Resolve(now)
	assert.Nil(t, b.Start)
	assert.Nil(t, b.End)
}

func TestResolveLastMonthInJanuary(t *testing.T) {
	b := LastMonth.Resolve(time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), *b.Start)
	assert.Equal(t, 31, b.End.Day())
}

func setupService(t *testing.T) (*Service, *repository.Repositories, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger:  gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))
	repos := repository.New(db)
	return NewService(repos), repos, db
}

func TestServiceFleet(t *testing.T) {
	ctx := context.Background()
	svc, repos, db := setupService(t)

	for _, st := range []*string{nil, str(status.FleetContracted), str(status.FleetContracted)} {
		require.NoError(t, repos.Clients.Create(ctx, &models.Client{UserID: "u1", CompanyName: "c", Status: st}))
	}
	require.NoError(t, repos.Clients.Create(ctx, &models.Client{UserID: "u2", CompanyName: "other"}))

	old := models.Client{UserID: "u1", CompanyName: "old"}
	require.NoError(t, repos.Clients.Create(ctx, &old))
	require.NoError(t, db.Model(&models.Client{}).Where("id = ?", old.ID).
		Update("created_at", time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)).Error)

	sum, err := svc.Fleet(ctx, "u1", ThisMonth)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 2, sum.Converted)
	assert.Equal(t, "66.7", sum.ConversionRateDisplay)

	sum, err = svc.Fleet(ctx, "u1", AllTime)
	require.NoError(t, err)
	assert.Equal(t, 4, sum.Total)
	assert.Equal(t, "50.0", sum.ConversionRateDisplay)
}

func TestServicePOS(t *testing.T) {
	ctx := context.Background()
	svc, repos, _ := setupService(t)

	p1 := models.POSClient{ClientCode: "1", ClientName: "a", Department: str(status.DepartmentRetail), Status: str(status.POSSentForContract)}
	p2 := models.POSClient{ClientCode: "2", ClientName: "b"}
	require.NoError(t, repos.POSClients.Create(ctx, &p1))
	require.NoError(t, repos.POSClients.Create(ctx, &p2))
	require.NoError(t, repos.CallLogs.AddAndUpdateClient(ctx, &models.POSCallLog{POSClientID: p2.ID, UserID: "u1", Status: status.POSInterested, CallDate: "2026-01-01"}))

	sum, err := svc.POS(ctx, AllTime)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Converted)
	assert.Equal(t, "50.0", sum.ConversionRateDisplay)
	assert.EqualValues(t, 1, sum.ContactEvents)
	assert.ElementsMatch(t, []Group{{Name: status.DepartmentRetail, Count: 1}, {Name: status.DepartmentUnset, Count: 1}}, sum.Groups)
}
