package sheet_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/greyweave/charsheet/internal/errors"
	sheetrepo "github.com/greyweave/charsheet/internal/repositories/sheet"
	"github.com/greyweave/charsheet/internal/testutils"
)

type InMemoryRepositoryTestSuite struct {
	suite.Suite
	repo sheetrepo.Repository
	ctx  context.Context
}

func (s *InMemoryRepositoryTestSuite) SetupTest() {
	s.repo = sheetrepo.NewInMemory()
	s.ctx = context.Background()
}

func (s *InMemoryRepositoryTestSuite) TestCreateAndGet() {
	sheet := testutils.CreateTestSheet("sheet_123")

	_, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: sheet})
	s.Require().NoError(err)

	getOut, err := s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "sheet_123"})
	s.Require().NoError(err)
	s.Equal(sheet.Name, getOut.Sheet.Name)
	s.Equal(sheet.Skills, getOut.Sheet.Skills)
}

func (s *InMemoryRepositoryTestSuite) TestGetReturnsCopy() {
	sheet := testutils.CreateTestSheet("sheet_123")
	_, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: sheet})
	s.Require().NoError(err)

	first, err := s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "sheet_123"})
	s.Require().NoError(err)
	first.Sheet.Name = "Mutated"
	first.Sheet.AbilityScores.Strength = 3

	second, err := s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "sheet_123"})
	s.Require().NoError(err)
	s.Equal(testutils.TestSheetName, second.Sheet.Name)
	s.Equal(int32(15), second.Sheet.AbilityScores.Strength)
}

func (s *InMemoryRepositoryTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "missing"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryRepositoryTestSuite) TestUpdate() {
	sheet := testutils.CreateTestSheet("sheet_123")
	_, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: sheet})
	s.Require().NoError(err)

	sheet.Level = 9
	_, err = s.repo.Update(s.ctx, sheetrepo.UpdateInput{Sheet: sheet})
	s.Require().NoError(err)

	getOut, err := s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "sheet_123"})
	s.Require().NoError(err)
	s.Equal(int32(9), getOut.Sheet.Level)
}

func (s *InMemoryRepositoryTestSuite) TestUpdateNotFound() {
	_, err := s.repo.Update(s.ctx, sheetrepo.UpdateInput{Sheet: testutils.CreateTestSheet("missing")})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryRepositoryTestSuite) TestDelete() {
	sheet := testutils.CreateTestSheet("sheet_123")
	_, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: sheet})
	s.Require().NoError(err)

	_, err = s.repo.Delete(s.ctx, sheetrepo.DeleteInput{ID: "sheet_123"})
	s.Require().NoError(err)

	_, err = s.repo.Get(s.ctx, sheetrepo.GetInput{ID: "sheet_123"})
	s.True(errors.IsNotFound(err))
}

func (s *InMemoryRepositoryTestSuite) TestListOrderedByID() {
	for _, id := range []string{"sheet_c", "sheet_a", "sheet_b"} {
		_, err := s.repo.Create(s.ctx, sheetrepo.CreateInput{Sheet: testutils.CreateTestSheet(id)})
		s.Require().NoError(err)
	}

	listOut, err := s.repo.List(s.ctx, sheetrepo.ListInput{})
	s.Require().NoError(err)
	s.Require().Len(listOut.Sheets, 3)
	s.Equal("sheet_a", listOut.Sheets[0].ID)
	s.Equal("sheet_c", listOut.Sheets[2].ID)
}

func TestInMemoryRepositorySuite(t *testing.T) {
	suite.Run(t, new(InMemoryRepositoryTestSuite))
}
