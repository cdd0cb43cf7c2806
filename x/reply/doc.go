/*
Package reply stores continuations of operations that wait for the outcome
of a call executed by the host.

A handler that needs the result of a call stashes a continuation right
before returning the call and uses the returned id as the reply id. When the
reply arrives, the handler takes the continuation back. Each continuation
can be taken exactly once.

Continuation kinds form a closed set registered by the extensions during the
program startup. Handlers switch over their own kinds when a continuation is
taken.
*/
package reply
