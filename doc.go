// Package recall implements the SM-2 spaced repetition scheduling algorithm
// for self-study modules.
//
// recall provides a pure-Go Engine that turns a recall quality grade (0-5)
// into the next review date, interval and ease factor of a module, and a
// Scheduler (in the recall/review subpackage) that persists review records
// through a pluggable Store and answers due/upcoming/statistics queries.
//
// Basic usage:
//
//	e, err := recall.NewEngine(recall.EngineConfig{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	rec := e.NewRecord("01-calculus", time.Now())
//	rec, log := e.ReviewRecord(rec, recall.CorrectHesitant, time.Now())
package recall
