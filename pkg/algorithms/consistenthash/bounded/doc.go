/*
Package bounded implements consistent hashing with a per-host load cap.
Get walks the ring from the key's position (at most as many ring positions
as there are hosts) and picks the first host holding fewer than 10 keys.
The cap is fixed: the load factor passed to New is not applied, and the cap
does not follow the average load. When every position visited is at the
cap, the key's canonical host is returned anyway, so loads are not
strictly bounded.
*/
package bounded
