// Package visibility owns the calendar-identifier grammar and the
// resolver that maps events and users into identifier sets.
//
// A calendar identifier is an opaque string tag partitioning
// visibility space. Three shapes exist: "user_<id>" (personal),
// "committee_<id>" (group), and bare tags such as "board", "public",
// "general", or caller-defined categories. The same shape both tags
// an event and grants a viewer access; the membership test is set
// intersection and nothing more.
//
// Every piece of identifier derivation and comparison lives in this
// package. No other component concatenates or parses tags.
package visibility
