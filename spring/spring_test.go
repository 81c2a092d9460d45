package spring_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/pdspring/spring"
)

var _ = Describe("New", func() {
	DescribeTable("accepts every valid duration and bounce",
		func(duration, bounce float64) {
			ease, err := spring.New(duration, bounce)
			Expect(err).NotTo(HaveOccurred())
			Expect(ease).NotTo(BeNil())
			Expect(ease(0)).To(BeNumerically("~", 0, 1e-12))
		},
		Entry("defaults", spring.DefaultDuration, spring.DefaultBounce),
		Entry("tiny duration", 1e-3, 0.0),
		Entry("long duration", 10.0, 0.5),
		Entry("upper bounce", 0.8, 1.0),
		Entry("lower bounce", 0.8, -1.0),
		Entry("no bounce", 0.5, 0.0),
	)

	DescribeTable("rejects non-positive durations",
		func(duration, bounce float64) {
			_, err := spring.New(duration, bounce)
			Expect(err).To(MatchError(spring.ErrInvalidArgument))
			Expect(err.Error()).To(Equal("spring: duration must be greater than 0"))

			var argErr *spring.ArgumentError
			Expect(errors.As(err, &argErr)).To(BeTrue())
			Expect(argErr.Param).To(Equal("duration"))
		},
		Entry("zero", 0.0, 0.3),
		Entry("negative", -1.0, 0.3),
		Entry("zero with bad bounce", 0.0, 5.0),
		Entry("NaN", math.NaN(), 0.3),
	)

	DescribeTable("rejects bounce outside [-1, 1]",
		func(bounce float64) {
			_, err := spring.New(0.8, bounce)
			Expect(errors.Is(err, spring.ErrInvalidArgument)).To(BeTrue())
			Expect(err.Error()).To(Equal("spring: bounce must be between -1 and 1"))
		},
		Entry("above", 1.5),
		Entry("below", -1.5),
		Entry("barely above", 1.0000001),
		Entry("NaN", math.NaN()),
	)

	It("panics from MustNew on invalid input", func() {
		Expect(func() { spring.MustNew(0, 0) }).To(Panic())
		Expect(func() { spring.MustNew(0.5, 0.2) }).NotTo(Panic())
	})

	It("returns the default curve", func() {
		want := spring.MustNew(0.8, 0.3)
		ease := spring.Default()
		for _, t := range []float64{0, 0.1, 0.4, 0.8, 2} {
			Expect(ease(t)).To(Equal(want(t)))
		}
	})
})

var _ = Describe("the 0.8s / 0.15 bounce spring", func() {
	var ease spring.Easing

	BeforeEach(func() {
		ease = spring.MustNew(0.8, 0.15)
	})

	It("translates to the expected physical parameters", func() {
		p := spring.Translate(0.8, 0.15)
		Expect(p.Mass).To(Equal(1.0))
		Expect(p.Stiffness).To(BeNumerically("~", math.Pow(2*math.Pi/0.96, 2), 1e-12))
		Expect(p.Stiffness).To(BeNumerically("~", 42.84, 0.01))
		Expect(p.Damping).To(BeNumerically("~", 10.1265, 1e-3))
		Expect(p.Underdamped()).To(BeTrue())
	})

	It("starts at zero", func() {
		Expect(ease(0)).To(Equal(0.0))
	})

	It("settles to one", func() {
		Expect(ease(5)).To(BeNumerically("~", 1, 1e-6))
	})

	It("overshoots before settling", func() {
		peak := 0.0
		for _, v := range ease.Sample(400, 2) {
			peak = math.Max(peak, v)
		}
		Expect(peak).To(BeNumerically(">", 1))
	})

	It("is deterministic", func() {
		for _, t := range []float64{0.013, 0.27, 0.8, 1.9} {
			Expect(math.Float64bits(ease(t))).To(Equal(math.Float64bits(ease(t))))
		}
	})
})

var _ = Describe("convergence", func() {
	DescribeTable("settles to one for decaying springs",
		func(bounce float64) {
			ease := spring.MustNew(0.8, bounce)
			Expect(ease(20)).To(BeNumerically("~", 1, 1e-6))
		},
		Entry("overdamped, bounce -1", -1.0),
		Entry("overdamped, bounce -0.5", -0.5),
		Entry("underdamped, bounce 0", 0.0),
		Entry("underdamped, bounce 0.3", 0.3),
		Entry("underdamped, bounce 0.5", 0.5),
	)
})

var _ = Describe("FromPhysical", func() {
	It("starts at zero for an underdamped spring", func() {
		ease := spring.FromPhysical(100, 10, 1, 0)
		Expect(ease(0)).To(Equal(0.0))
	})

	It("follows the underdamped closed form", func() {
		ease := spring.FromPhysical(100, 10, 1, 2)
		omegaD := 10 * math.Sqrt(1-0.25)
		for _, t := range []float64{0.05, 0.3, 1.1} {
			want := 1 - math.Exp(-0.5*10*t)*((0.2*10*math.Sin(omegaD*t))/omegaD+math.Cos(omegaD*t))
			Expect(ease(t)).To(BeNumerically("~", want, 1e-12))
		}
	})

	It("follows the overdamped closed form", func() {
		ease := spring.FromPhysical(100, 40, 1, 3)
		alpha := 10 * math.Sqrt(4-1)
		for _, t := range []float64{0.05, 0.3, 1.1} {
			want := 1 - math.Exp(-2*10*t)*((0.3*10*math.Sinh(alpha*t))/alpha+math.Cosh(alpha*t))
			Expect(ease(t)).To(BeNumerically("~", want, 1e-12))
		}
	})

	It("stays finite at critical damping", func() {
		ease := spring.FromPhysical(100, 20, 1, 5)
		Expect(ease(0)).To(Equal(0.0))
		want := 1 - math.Exp(-1)*(5*0.1+1)
		Expect(ease(0.1)).To(BeNumerically("~", want, 1e-12))
	})

	It("degrades to NaN instead of failing for zero mass", func() {
		ease := spring.FromPhysical(100, 10, 0, 0)
		Expect(math.IsNaN(ease(0.5)) || math.IsInf(ease(0.5), 0)).To(BeTrue())
	})
})

var _ = Describe("Easing helpers", func() {
	It("interpolates between endpoints", func() {
		ease := spring.MustNew(0.8, 0.15)
		Expect(ease.Lerp(0, 200, 0)).To(Equal(0.0))
		Expect(ease.Lerp(0, 200, 5)).To(BeNumerically("~", 200, 1e-4))
		Expect(ease.Lerp(50, 50, 0.3)).To(Equal(50.0))
	})

	It("samples evenly spaced points", func() {
		ease := spring.MustNew(0.8, 0.15)
		values := ease.Sample(5, 1)
		Expect(values).To(HaveLen(5))
		Expect(values[0]).To(Equal(0.0))
		Expect(values[2]).To(Equal(ease(0.5)))
		Expect(values[4]).To(Equal(ease(1)))
		Expect(ease.Sample(0, 1)).To(BeNil())
		Expect(ease.Sample(1, 1)).To(Equal([]float64{0}))
	})
})
