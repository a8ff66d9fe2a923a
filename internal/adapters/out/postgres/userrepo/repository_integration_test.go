package userrepo_test

import (
	"context"
	"testing"

	"waterdelivery/internal/adapters/out/postgres/pgtest"
	"waterdelivery/internal/adapters/out/postgres/userrepo"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/user"
	"waterdelivery/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

type UserRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *userrepo.GormUserRepository
}

func (suite *UserRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
}

func (suite *UserRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.repository = userrepo.NewGormUserRepository(suite.pg.DB)
}

func (suite *UserRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.pg != nil {
		suite.Require().NoError(suite.pg.Terminate(context.Background()))
	}
}

func (suite *UserRepositoryIntegrationTestSuite) TestGetActiveRider() {
	ctx := context.Background()
	rider := suite.add("Ravi", user.Rider, true)
	inactive := suite.add("Omar", user.Rider, false)
	admin := suite.add("Aisha", user.Admin, true)

	got, err := suite.repository.GetActiveRider(ctx, rider.ID())
	suite.Require().NoError(err)
	suite.Equal("Ravi", got.Name())
	suite.Equal(user.Rider, got.Role())

	_, err = suite.repository.GetActiveRider(ctx, inactive.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetActiveRider(ctx, admin.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	stored, err := suite.repository.Get(ctx, inactive.ID())
	suite.Require().NoError(err)
	suite.False(stored.IsActive())
}

func (suite *UserRepositoryIntegrationTestSuite) TestListActiveAdmins_SortedByName() {
	suite.add("Zara", user.Admin, true)
	suite.add("Aisha", user.Admin, true)
	suite.add("Bilal", user.Admin, false)
	suite.add("Ravi", user.Rider, true)

	admins, err := suite.repository.ListActiveAdmins(context.Background())
	suite.Require().NoError(err)

	suite.Require().Len(admins, 2)
	suite.Equal("Aisha", admins[0].Name())
	suite.Equal("Zara", admins[1].Name())
}

func (suite *UserRepositoryIntegrationTestSuite) TestGet_Missing_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UserRepositoryIntegrationTestSuite) add(name string, role user.Role, active bool) *user.User {
	u, err := user.RestoreUser(kernel.NewUUID(), name, "", role, active)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(context.Background(), u))
	return u
}

func TestUserRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UserRepositoryIntegrationTestSuite))
}
