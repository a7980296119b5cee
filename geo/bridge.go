package geo

import (
	"context"
	"encoding/json"
	"log"
	"net"
	"net/http"
	"time"

	"nhooyr.io/websocket"

	"zombierun/world"
)

// Bridge is the primary location source: a small embedded web server a
// phone browser connects to. The page it serves forwards the phone's
// geolocation fixes as JSON text frames over a websocket, one
// {"lat":..,"lon":..} object per fix.
type Bridge struct {
	addr     string
	serveMux http.ServeMux
	fix      func(at world.LatLng)
	listener net.Listener
}

func NewBridge(addr string) *Bridge {
	b := &Bridge{addr: addr}
	b.serveMux.HandleFunc("/", b.onPage)
	b.serveMux.HandleFunc("/ws", b.onConnection)
	return b
}

func (b *Bridge) Name() string { return "bridge" }

// Start listens on the bridge address and serves until the process ends.
// A busy port means the source is unavailable.
func (b *Bridge) Start(fix func(at world.LatLng)) error {
	l, err := net.Listen("tcp", b.addr)
	if err != nil {
		return err
	}
	b.fix = fix
	b.listener = l
	log.Printf("location bridge on http://%v", l.Addr())

	s := &http.Server{
		Handler:     b,
		ReadTimeout: 10 * time.Second,
	}
	go func() {
		if err := s.Serve(l); err != nil {
			log.Printf("location bridge: %v", err)
		}
	}()
	return nil
}

func (b *Bridge) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.serveMux.ServeHTTP(w, r)
}

// Addr reports the bound address once Start has succeeded.
func (b *Bridge) Addr() string {
	return b.listener.Addr().String()
}

func (b *Bridge) onPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(bridgePage))
}

func (b *Bridge) onConnection(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// The phone connects from whatever origin serves it.
		InsecureSkipVerify: true,
	})
	if err != nil {
		log.Println(err)
		return
	}
	defer c.Close(websocket.StatusInternalError, "")

	if err := b.handleConnection(r.Context(), c); err != nil {
		log.Println(err)
		return
	}
}

func (b *Bridge) handleConnection(ctx context.Context, c *websocket.Conn) error {
	for {
		messageType, data, err := c.Read(ctx)
		if err != nil {
			return err
		}
		if messageType != websocket.MessageText {
			continue
		}

		var at world.LatLng
		if err := json.Unmarshal(data, &at); err != nil {
			// A bad frame is dropped, not fatal to the connection.
			log.Printf("location bridge: bad fix: %v", err)
			continue
		}
		b.fix(at)
	}
}

// bridgePage mirrors the original browser client's location handling:
// one immediate high-accuracy fix, then continuous watching with fixes no
// older than ten seconds.
const bridgePage = `<!DOCTYPE html>
<html>
<head><title>Zombie, Run! location bridge</title></head>
<body>
<p id="status">Connecting&hellip;</p>
<script>
var status = document.getElementById("status");
var ws = new WebSocket("ws://" + location.host + "/ws");
ws.onopen = function() {
  if (!navigator.geolocation) {
    status.textContent = "No geolocation support on this device.";
    return;
  }
  var send = function(position) {
    ws.send(JSON.stringify({
      lat: position.coords.latitude,
      lon: position.coords.longitude,
    }));
    status.textContent = "Streaming your location. Keep this page open.";
  };
  var fail = function() {};
  navigator.geolocation.getCurrentPosition(send, fail,
      { enableHighAccuracy: true, maximumAge: 0, timeout: 0 });
  navigator.geolocation.watchPosition(send, fail,
      { enableHighAccuracy: true, maximumAge: 10 * 1000, timeout: 0 });
};
ws.onclose = function() {
  status.textContent = "Disconnected.";
};
</script>
</body>
</html>
`
