package countdown

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"
)

// State adalah sisa waktu diskon pada satu titik waktu.
type State struct {
	Days    int    `json:"days"`
	Hours   int    `json:"hours"`
	Minutes int    `json:"minutes"`
	Seconds int    `json:"seconds"`
	Text    string `json:"text"`
	Expired bool   `json:"expired"`
	Label   string `json:"label"`
}

// At menghitung sisa waktu sampai end. Unit nol di depan tidak ditampilkan,
// detik selalu ditampilkan. Selisih negatif berarti diskon sudah berakhir.
func At(end, now time.Time) State {
	distance := end.Sub(now)
	if distance < 0 {
		return State{Text: "EXPIRED", Expired: true, Label: "Sale Ended"}
	}

	s := State{
		Days:    int(distance / (24 * time.Hour)),
		Hours:   int(distance % (24 * time.Hour) / time.Hour),
		Minutes: int(distance % time.Hour / time.Minute),
		Seconds: int(distance % time.Minute / time.Second),
	}

	var parts []string
	for _, u := range []struct {
		v      int
		suffix string
	}{{s.Days, "d"}, {s.Hours, "h"}, {s.Minutes, "m"}} {
		if u.v == 0 && len(parts) == 0 {
			continue
		}
		parts = append(parts, strconv.Itoa(u.v)+u.suffix)
	}
	parts = append(parts, strconv.Itoa(s.Seconds)+"s")

	s.Text = strings.Join(parts, " ")
	s.Label = "Sale ends in: " + s.Text
	return s
}

// Timer mengirim State secara berkala sampai diskon berakhir atau dihentikan.
type Timer struct {
	stop chan struct{}
	done chan struct{}
	once sync.Once
}

// Start langsung mengirim state pertama lalu satu state setiap interval.
// Setelah state Expired terkirim timer berhenti sendiri.
func Start(ctx context.Context, end time.Time, interval time.Duration, onTick func(State)) *Timer {
	t := &Timer{
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go t.run(ctx, end, interval, onTick)
	return t
}

func (t *Timer) run(ctx context.Context, end time.Time, interval time.Duration, onTick func(State)) {
	defer close(t.done)

	if onTick == nil {
		onTick = func(State) {}
	}

	emit := func() bool {
		s := At(end, time.Now())
		onTick(s)
		return s.Expired
	}
	if emit() {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.stop:
			return
		case <-ticker.C:
			if emit() {
				return
			}
		}
	}
}

// Stop menghentikan timer. Aman dipanggil berkali-kali.
func (t *Timer) Stop() {
	t.once.Do(func() { close(t.stop) })
	<-t.done
}

// Done ditutup setelah timer tidak lagi mengirim state.
func (t *Timer) Done() <-chan struct{} {
	return t.done
}
