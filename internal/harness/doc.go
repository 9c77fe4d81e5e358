// Package harness replays scripted table sessions.
//
// A session is a YAML file listing user intents in order. Run executes them
// against a fresh in-memory SQLite store with predictable IDs, records a
// trace of every step, and checks optional expectations. RunWithGolden
// additionally compares the trace and final view with a golden file.
//
// # Session Format
//
//	name: paging
//	description: Twelve users span three pages
//	steps:
//	  - import: '[{"name":"A","age":5,"email":"a@x.com"}]'
//	  - add: {name: Sara, age: "25", email: s@x.com}
//	  - search: sa
//	  - sort: nameLenDesc
//	  - next: true
//	  - prev: true
//	  - page: 2
//	  - delete: user-1
//	    expect:
//	      outcome: ok
//	      total_items: 1
//	      items: [user-2]
//
// Every step names exactly one intent. IDs are "user-1", "user-2", ... in
// creation order unless id_prefix is set.
//
// # Usage
//
//	session, err := harness.LoadSession("testdata/sessions/paging.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(session)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
