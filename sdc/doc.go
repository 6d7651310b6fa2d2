// Package sdc indexes the constraint objects a front end's SDC reader
// populates: clocks, input/output delays, exceptions, clock uncertainty/
// latency/insertion, disabled edges, case analysis, operating conditions
// and derating. Forward search (spec §4.6) reads it to seed arrivals and
// to advance each tag's ExceptionState; backward search (spec §4.7) reads
// it for endpoint check targets and CRPR's uncertainty/mode knobs.
package sdc
