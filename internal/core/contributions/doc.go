// Package contributions holds the admissibility rules and the aggregation logic for a
// member's pension contributions.
//
// Everything here is a pure function of its arguments. The evaluation instant is always
// passed in by the caller; nothing reads the system clock. Callers that append admitted
// contributions to a stored set are responsible for serialising validate-then-append per
// member, otherwise two concurrent mandatory submissions for the same month can both pass.
package contributions
