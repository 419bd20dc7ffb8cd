package mqtt311

import (
	"fmt"
	"testing"
	"time"
)

func TestDebugKeepAlive2(t *testing.T) {
	start := time.Now()
	client, broker, _ := newTestClient(t, WithKeepAlive(1))
	connectAccepted(t, client, broker)

	pkt := <-broker.packets
	fmt.Println("got 1st", pkt.Type(), time.Since(start))
	broker.send(t, &PingrespPacket{})
	fmt.Println("sent pingresp", time.Since(start))

	select {
	case pkt2 := <-broker.packets:
		fmt.Println("got 2nd", pkt2.Type(), time.Since(start))
	case <-time.After(3 * time.Second):
		fmt.Println("TIMEOUT waiting for 2nd", time.Since(start))
	}
}
