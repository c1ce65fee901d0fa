// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type validationTestSuite struct {
	suite.Suite
}

func TestValidation(t *testing.T) {
	suite.Run(t, new(validationTestSuite))
}

func (s *validationTestSuite) TestNewChain() {
	s.Run("without option", func() {
		chain := New()
		s.Assert().NotNil(chain)
		s.Assert().False(chain.failFast)
	})
	s.Run("with options", func() {
		s.Assert().True(New(FailFast()).failFast)
		s.Assert().False(New(AllErrors()).failFast)
	})
}

func (s *validationTestSuite) TestAddAssertion() {
	chain := New().AddAssertion(true, "")
	s.Assert().Len(chain.validators, 1)
	s.Assert().NoError(chain.Validate())
}

func (s *validationTestSuite) TestValidate() {
	s.Run("with FailFast", func() {
		err := New(FailFast()).
			AddValidator(NewEmptyStringValidator("field", "")).
			AddAssertion(false, "this is false").
			Validate()
		s.Assert().EqualError(err, "the [field] is required")
	})
	s.Run("with AllErrors", func() {
		err := New(AllErrors()).
			AddValidator(NewEmptyStringValidator("field", " ")).
			AddAssertion(false, "this is false").
			Validate()
		s.Assert().EqualError(err, "the [field] is required; this is false")
	})
}

func (s *validationTestSuite) TestBooleanValidator() {
	s.Assert().NoError(NewBooleanValidator(true, "boom").Validate())
	s.Assert().EqualError(NewBooleanValidator(false, "boom").Validate(), "boom")
}

func (s *validationTestSuite) TestDurationValidator() {
	s.Assert().NoError(NewDurationValidator("timeout", time.Second, time.Second).Validate())
	s.Assert().EqualError(NewDurationValidator("timeout", time.Millisecond, time.Second).Validate(),
		"the [timeout] must be at least 1s")
}

func (s *validationTestSuite) TestSubjectValidator() {
	s.Assert().NoError(NewSubjectValidator("subject", "pulse.actor.a-1_b").Validate())
	s.Assert().Error(NewSubjectValidator("subject", "pulse.*").Validate())
	s.Assert().Error(NewSubjectValidator("subject", "pulse..actor").Validate())
	s.Assert().Error(NewSubjectValidator("subject", "").Validate())
}
