/*
Package algorithms provides implementations of common algorithms for distributed systems and sorting.

Highlights:
  - Consistent Hashing: bounded-load hashing (consistenthash/bounded)
  - Rate Limiting: token bucket, leaky bucket and fixed-window limiters (ratelimit), a traffic shaper (ratelimit/shaper)
  - Load Balancing: Round Robin, Random, Least Connections, Weighted Round Robin
  - Sorting: Quick Sort

The consensus (paxos, raft), graph (dijkstra) and ratelimit/tokenbucket
directories hold tests only; their implementations are not in this tree.
*/
package algorithms
