package switching

import "github.com/sarchlab/dcnetsim"

// packetQueues holds the packets waiting for the next forward pass, one list
// per destination. Lists are taken in first-insertion order of their keys so that forward
// passes are deterministic.
type packetQueues[K comparable] struct {
	order []K
	lists map[K][]*dcnetsim.HostPacket
}

func newPacketQueues[K comparable]() *packetQueues[K] {
	return &packetQueues[K]{
		lists: make(map[K][]*dcnetsim.HostPacket),
	}
}

// get returns the list of the key, creating an empty one if needed.
func (q *packetQueues[K]) get(key K) []*dcnetsim.HostPacket {
	list, found := q.lists[key]
	if !found {
		list = []*dcnetsim.HostPacket{}
		q.lists[key] = list
		q.order = append(q.order, key)
	}

	return list
}

func (q *packetQueues[K]) add(key K, pkt *dcnetsim.HostPacket) {
	q.lists[key] = append(q.get(key), pkt)
}

// numPackets returns the number of packets queued under all keys.
func (q *packetQueues[K]) numPackets() int {
	n := 0
	for _, list := range q.lists {
		n += len(list)
	}

	return n
}

type packetBatch[K comparable] struct {
	key     K
	packets []*dcnetsim.HostPacket
}

// take removes every list from the queues and returns them in key order.
func (q *packetQueues[K]) take() []packetBatch[K] {
	batches := make([]packetBatch[K], 0, len(q.order))
	for _, key := range q.order {
		batches = append(batches, packetBatch[K]{
			key:     key,
			packets: q.lists[key],
		})
	}

	q.order = nil
	q.lists = make(map[K][]*dcnetsim.HostPacket)

	return batches
}
