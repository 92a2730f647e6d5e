package submission_test

import (
	"testing"
	"time"

	"github.com/reelscore/reelscore/internal/domain/model"
	"github.com/reelscore/reelscore/internal/domain/submission"
	. "github.com/smartystreets/goconvey/convey"
)

func newSubmission() *model.FilmSubmission {
	return &model.FilmSubmission{
		ID:       "film-1",
		PlayerID: "player-1",
		Title:    "Sophomore season highlights",
		VideoRef: "s3://film/abc.mp4",
		Status:   model.StatusSubmitted,
	}
}

func TestClaim(t *testing.T) {
	Convey("Given an unassigned submission", t, func() {
		sub := newSubmission()
		now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

		Convey("When an evaluator claims it", func() {
			out, err := submission.Claim(sub, "eval-1", model.RoleEvaluator, now)

			Convey("Then it is assigned and review begins", func() {
				So(err, ShouldBeNil)
				So(out.NewlyAssigned, ShouldBeTrue)
				So(out.Advanced, ShouldBeTrue)
				So(sub.AssignedEvaluatorID, ShouldEqual, "eval-1")
				So(sub.AssignedAt, ShouldNotBeNil)
				So(sub.AssignedAt.Equal(now), ShouldBeTrue)
				So(sub.Status, ShouldEqual, model.StatusInReview)
			})

			Convey("And both transitions are recorded in history", func() {
				So(err, ShouldBeNil)
				So(len(sub.History), ShouldEqual, 2)
				So(sub.History[0].Action, ShouldEqual, submission.ActionAssigned)
				So(sub.History[1].Action, ShouldEqual, submission.ActionStatusChanged)
				So(sub.History[1].FromStatus, ShouldEqual, model.StatusSubmitted)
				So(sub.History[1].ToStatus, ShouldEqual, model.StatusInReview)
			})
		})

		Convey("When an admin claims it", func() {
			out, err := submission.Claim(sub, "admin-1", model.RoleAdmin, now)

			Convey("Then it is assigned but review does not begin", func() {
				So(err, ShouldBeNil)
				So(out.NewlyAssigned, ShouldBeTrue)
				So(out.Advanced, ShouldBeFalse)
				So(sub.Status, ShouldEqual, model.StatusSubmitted)
			})
		})
	})

	Convey("Given a submission already assigned to another evaluator", t, func() {
		sub := newSubmission()
		now := time.Now()
		_, err := submission.Claim(sub, "eval-1", model.RoleEvaluator, now)
		So(err, ShouldBeNil)

		Convey("When a different evaluator tries to claim it", func() {
			_, err := submission.Claim(sub, "eval-2", model.RoleEvaluator, now)

			Convey("Then the claim is rejected", func() {
				So(err, ShouldEqual, submission.ErrAlreadyAssigned)
				So(sub.AssignedEvaluatorID, ShouldEqual, "eval-1")
			})
		})

		Convey("When the same evaluator claims it again", func() {
			out, err := submission.Claim(sub, "eval-1", model.RoleEvaluator, now)

			Convey("Then the claim is an idempotent no-op", func() {
				So(err, ShouldBeNil)
				So(out.NewlyAssigned, ShouldBeFalse)
				So(out.Advanced, ShouldBeFalse)
				So(len(sub.History), ShouldEqual, 2)
			})
		})

		Convey("When an admin acts on it", func() {
			out, err := submission.Claim(sub, "admin-1", model.RoleAdmin, now)

			Convey("Then the assignment guard is bypassed without stealing it", func() {
				So(err, ShouldBeNil)
				So(out.NewlyAssigned, ShouldBeFalse)
				So(sub.AssignedEvaluatorID, ShouldEqual, "eval-1")
			})
		})
	})
}

func TestComplete(t *testing.T) {
	Convey("Given a submission in review", t, func() {
		sub := newSubmission()
		now := time.Now()
		_, err := submission.Claim(sub, "eval-1", model.RoleEvaluator, now)
		So(err, ShouldBeNil)

		Convey("When the evaluator completes it", func() {
			err := submission.Complete(sub, "eval-1", now)

			Convey("Then it reaches the terminal state with history", func() {
				So(err, ShouldBeNil)
				So(sub.Status, ShouldEqual, model.StatusCompleted)
				last := sub.History[len(sub.History)-1]
				So(last.Action, ShouldEqual, submission.ActionStatusChanged)
				So(last.FromStatus, ShouldEqual, model.StatusInReview)
				So(last.ToStatus, ShouldEqual, model.StatusCompleted)
			})

			Convey("And completing again is rejected", func() {
				So(err, ShouldBeNil)
				So(submission.Complete(sub, "eval-1", now), ShouldEqual, submission.ErrAlreadyCompleted)
			})
		})
	})

	Convey("Given a submission still in the submitted state", t, func() {
		sub := newSubmission()

		Convey("When an admin completes it directly", func() {
			err := submission.Complete(sub, "admin-1", time.Now())

			Convey("Then completion is allowed from any non-terminal state", func() {
				So(err, ShouldBeNil)
				So(sub.Status, ShouldEqual, model.StatusCompleted)
			})
		})
	})
}
