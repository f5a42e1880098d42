package model

// DateLayout is the calendar date format used everywhere a date travels as a
// string ("2025-03-10"). Slot labels are free-form time-of-day strings from
// the doctor's template ("9:30 AM") and are compared verbatim.
const DateLayout = "2006-01-02"
