package deco

// Compartments is the number of ZH-L16 tissue compartments.
const Compartments = 16

type n2Coefficients struct {
	halfTime float64
	a        [3]float64 // indexed by Model
	b        float64
}

type heCoefficients struct {
	halfTime float64
	a        float64
	b        float64
}

// Ordered fastest to slowest half-time.
var zhl16N2 = [Compartments]n2Coefficients{
	{halfTime: 5.0, a: [3]float64{1.1696, 1.1696, 1.1696}, b: 0.5578},
	{halfTime: 8.0, a: [3]float64{1.0000, 1.0000, 1.0000}, b: 0.6514},
	{halfTime: 12.5, a: [3]float64{0.8618, 0.8618, 0.8618}, b: 0.7222},
	{halfTime: 18.5, a: [3]float64{0.7562, 0.7562, 0.7562}, b: 0.7825},
	{halfTime: 27.0, a: [3]float64{0.6667, 0.6667, 0.6200}, b: 0.8126},
	{halfTime: 38.3, a: [3]float64{0.5933, 0.5600, 0.5043}, b: 0.8434},
	{halfTime: 54.3, a: [3]float64{0.5282, 0.4947, 0.4410}, b: 0.8693},
	{halfTime: 77.0, a: [3]float64{0.4701, 0.4500, 0.4000}, b: 0.8910},
	{halfTime: 109.0, a: [3]float64{0.4187, 0.4187, 0.3750}, b: 0.9092},
	{halfTime: 146.0, a: [3]float64{0.3798, 0.3798, 0.3500}, b: 0.9222},
	{halfTime: 187.0, a: [3]float64{0.3497, 0.3497, 0.3295}, b: 0.9319},
	{halfTime: 239.0, a: [3]float64{0.3223, 0.3223, 0.3065}, b: 0.9403},
	{halfTime: 305.0, a: [3]float64{0.2971, 0.2850, 0.2835}, b: 0.9477},
	{halfTime: 390.0, a: [3]float64{0.2737, 0.2737, 0.2610}, b: 0.9544},
	{halfTime: 498.0, a: [3]float64{0.2523, 0.2523, 0.2480}, b: 0.9602},
	{halfTime: 635.0, a: [3]float64{0.2327, 0.2327, 0.2327}, b: 0.9653},
}

var zhl16He = [Compartments]heCoefficients{
	{halfTime: 1.88, a: 1.6189, b: 0.4770},
	{halfTime: 3.02, a: 1.3830, b: 0.5747},
	{halfTime: 4.72, a: 1.1919, b: 0.6527},
	{halfTime: 6.99, a: 1.0458, b: 0.7223},
	{halfTime: 10.21, a: 0.9220, b: 0.7582},
	{halfTime: 14.48, a: 0.8205, b: 0.7957},
	{halfTime: 20.53, a: 0.7305, b: 0.8279},
	{halfTime: 29.11, a: 0.6502, b: 0.8553},
	{halfTime: 41.20, a: 0.5950, b: 0.8757},
	{halfTime: 55.19, a: 0.5545, b: 0.8903},
	{halfTime: 70.69, a: 0.5333, b: 0.8997},
	{halfTime: 90.34, a: 0.5189, b: 0.9073},
	{halfTime: 115.29, a: 0.5181, b: 0.9122},
	{halfTime: 147.42, a: 0.5176, b: 0.9171},
	{halfTime: 188.24, a: 0.5172, b: 0.9217},
	{halfTime: 240.03, a: 0.5119, b: 0.9267},
}
