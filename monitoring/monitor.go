// Package monitoring serves the progress and results of a running experiment
// over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/pagesim/experiment"
	"github.com/sarchlab/pagesim/monitoring/web"
)

// SweepRecord holds the points of a sweep received so far.
type SweepRecord struct {
	Name      string
	Title     string
	ParamName string
	Done      bool
	Points    []experiment.Point
}

// Monitor turns an experiment into a server that reports its progress. It is
// an experiment.Sink.
type Monitor struct {
	portNumber  int
	openBrowser bool
	url         string

	lock         sync.Mutex
	progressBars []*ProgressBar
	sweepBars    map[string]*ProgressBar
	sweeps       map[string]*SweepRecord
	sweepOrder   []string
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{
		sweepBars: make(map[string]*ProgressBar),
		sweeps:    make(map[string]*SweepRecord),
	}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// WithOpenBrowser makes StartServer open the monitor page in a browser.
func (m *Monitor) WithOpenBrowser(open bool) *Monitor {
	m.openBrowser = open
	return m
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.lock.Lock()
	defer m.lock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.lock.Lock()
	defer m.lock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// ProgressBars returns the bars that are not completed.
func (m *Monitor) ProgressBars() []*ProgressBar {
	m.lock.Lock()
	defer m.lock.Unlock()

	bars := make([]*ProgressBar, len(m.progressBars))
	copy(bars, m.progressBars)

	return bars
}

// TrackReferences creates a bar of total page references and returns the hook
// that advances it.
func (m *Monitor) TrackReferences(total uint64) *ReferenceCounter {
	return &ReferenceCounter{bar: m.CreateProgressBar("references", total)}
}

// StartSweep creates the progress bar of the sweep.
func (m *Monitor) StartSweep(s experiment.Sweep) error {
	bar := m.CreateProgressBar(s.Title, uint64(len(s.Values)))

	m.lock.Lock()
	defer m.lock.Unlock()

	if _, found := m.sweeps[s.Name]; !found {
		m.sweepOrder = append(m.sweepOrder, s.Name)
	}

	m.sweepBars[s.Name] = bar
	m.sweeps[s.Name] = &SweepRecord{
		Name:      s.Name,
		Title:     s.Title,
		ParamName: s.ParamName,
	}

	return nil
}

// Record stores the point and advances the bar of the sweep.
func (m *Monitor) Record(s experiment.Sweep, p experiment.Point) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	rec, found := m.sweeps[s.Name]
	if !found {
		return fmt.Errorf("sweep %s was not started", s.Name)
	}

	rec.Points = append(rec.Points, p)
	m.sweepBars[s.Name].IncrementFinished(1)

	return nil
}

// EndSweep completes the progress bar of the sweep.
func (m *Monitor) EndSweep(s experiment.Sweep) error {
	m.lock.Lock()
	bar, found := m.sweepBars[s.Name]
	if found {
		m.sweeps[s.Name].Done = true
		delete(m.sweepBars, s.Name)
	}
	m.lock.Unlock()

	if !found {
		return fmt.Errorf("sweep %s was not started", s.Name)
	}

	m.CompleteProgressBar(bar)

	return nil
}

// Sweep returns a copy of the record of the named sweep.
func (m *Monitor) Sweep(name string) (SweepRecord, bool) {
	m.lock.Lock()
	defer m.lock.Unlock()

	rec, found := m.sweeps[name]
	if !found {
		return SweepRecord{}, false
	}

	cp := *rec
	cp.Points = append([]experiment.Point(nil), rec.Points...)

	return cp, true
}

// SweepNames returns the names of the sweeps seen, in start order.
func (m *Monitor) SweepNames() []string {
	m.lock.Lock()
	defer m.lock.Unlock()

	return append([]string{}, m.sweepOrder...)
}

// URL returns the address of the server after StartServer.
func (m *Monitor) URL() string {
	return m.url
}

// Handler returns the router serving the monitor API and the web page.
func (m *Monitor) Handler() http.Handler {
	r := mux.NewRouter()

	fs := web.GetAssets()
	fServer := http.FileServer(fs)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/sweeps", m.listSweeps)
	r.HandleFunc("/api/sweep/{name}", m.sweepDetails)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/").Handler(fServer)

	return r
}

// StartServer starts the monitor as a web server with a custom port if wanted.
func (m *Monitor) StartServer() {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	m.url = fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)

	fmt.Fprintf(os.Stderr, "Monitoring simulation with %s\n", m.url)

	handler := m.Handler()
	go func() {
		err := http.Serve(listener, handler)
		dieOnErr(err)
	}()

	if m.openBrowser {
		err = browser.OpenURL(m.url)
		if err != nil {
			log.Printf("cannot open browser: %v", err)
		}
	}
}

type progressRsp struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	StartTime  time.Time `json:"start_time"`
	Total      uint64    `json:"total"`
	Finished   uint64    `json:"finished"`
	InProgress uint64    `json:"in_progress"`
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	bars := m.ProgressBars()

	rsp := make([]progressRsp, 0, len(bars))
	for _, b := range bars {
		total, finished, inProgress := b.Snapshot()
		rsp = append(rsp, progressRsp{
			ID:         b.ID,
			Name:       b.Name,
			StartTime:  b.StartTime,
			Total:      total,
			Finished:   finished,
			InProgress: inProgress,
		})
	}

	writeJSON(w, rsp)
}

func (m *Monitor) listSweeps(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, m.SweepNames())
}

func (m *Monitor) sweepDetails(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	rec, found := m.Sweep(name)
	if !found {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Sweep not found"))
		dieOnErr(err)

		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(rec)
	serializer.SetMaxDepth(4)
	err := serializer.Serialize(w)

	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	rsp := resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	}

	writeJSON(w, rsp)
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		w.WriteHeader(http.StatusConflict)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")
	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
