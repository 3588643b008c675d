package sheet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/greyweave/charsheet/internal/errors"
	sheetrepo "github.com/greyweave/charsheet/internal/repositories/sheet"
	"github.com/greyweave/charsheet/internal/testutils"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    sheetrepo.Repository
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.repo = sheetrepo.NewRedisRepository(client)
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) TestCreateAndGet() {
	sheet := testutils.CreateTestSheet("sheet_123")

	createOut, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: sheet})
	s.Require().NoError(err)
	s.Equal(sheet, createOut.Sheet)

	getOut, err := s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "sheet_123"})
	s.Require().NoError(err)
	s.Equal(sheet.Name, getOut.Sheet.Name)
	s.Equal(sheet.RaceID, getOut.Sheet.RaceID)
	s.Equal(sheet.AbilityScores.Strength, getOut.Sheet.AbilityScores.Strength)
	s.Equal(sheet.Skills, getOut.Sheet.Skills)
}

func (s *RedisRepositoryTestSuite) TestCreateValidation() {
	_, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))

	sheet := testutils.CreateTestSheet("")
	_, err = s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: sheet})
	s.Require().Error(err)
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	sheet := testutils.CreateTestSheet("sheet_123")
	_, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: sheet})
	s.Require().NoError(err)

	sheet.Level = 6
	sheet.Name = "Thorin, Son of Thrain"
	_, err = s.repo.Update(s.ctx, sheetrepo.UpdateInput{Sheet: sheet})
	s.Require().NoError(err)

	getOut, err := s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "sheet_123"})
	s.Require().NoError(err)
	s.Equal(int32(6), getOut.Sheet.Level)
	s.Equal("Thorin, Son of Thrain", getOut.Sheet.Name)
}

func (s *RedisRepositoryTestSuite) TestUpdateNotFound() {
	sheet := testutils.CreateTestSheet("missing")
	_, err := s.repo.Update(s.ctx, sheetrepo.UpdateInput{Sheet: sheet})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestDelete() {
	sheet := testutils.CreateTestSheet("sheet_123")
	_, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: sheet})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, sheetrepo.DeleteInput{ID: "sheet_123"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "sheet_123"})
	s.True(errors.IsNotFound(err))

	_, err = s.repo.Delete(s.ctx, sheetrepo.DeleteInput{ID: "sheet_123"})
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestList() {
	for _, id := range []string{"sheet_b", "sheet_a", "sheet_c"} {
		_, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: testutils.CreateTestSheet(id)})
		s.Require().NoError(err)
	}

	listOut, err := s.repo.List(s.ctx, sheetrepo.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(listOut.Sheets, 3)
	s.Equal("sheet_a", listOut.Sheets[0].ID)
	s.Equal("sheet_b", listOut.Sheets[1].ID)
	s.Equal("sheet_c", listOut.Sheets[2].ID)
}

func (s *RedisRepositoryTestSuite) TestListEmpty() {
	listOut, err := s.repo.List(s.ctx, sheetrepo.ListInput{})
	s.Require().NoError(err)
	s.Empty(listOut.Sheets)
}

func TestRedisRepositorySuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
