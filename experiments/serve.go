package experiments

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"svplan/svp"
	"svplan/tasks"
)

// policyServer answers greedy-action queries from a solved table so an
// external controller process can consume the policy over HTTP.
type policyServer struct {
	q       *mat.Dense
	policy  *svp.Policy
	states  *tasks.Grid
	actions *tasks.Grid
}

type actRequest struct {
	State []float64 `json:"state"`
}

func (s *policyServer) handleAct(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request"})
		return
	}
	req := &actRequest{}
	if err := json.Unmarshal(body, req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to unmarshal request"})
		return
	}
	if len(req.State) != s.states.Axes() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state has wrong dimension"})
		return
	}
	state := s.states.Index(req.State)
	action := s.policy.Action(state)
	c.JSON(http.StatusOK, gin.H{
		"state":   state,
		"action":  action,
		"control": s.actions.Point(action),
	})
}

func (s *policyServer) handlePolicy(c *gin.Context) {
	state, err := strconv.Atoi(c.Param("state"))
	if err != nil || state < 0 || state >= s.policy.NumStates() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad state index"})
		return
	}
	action := s.policy.Action(state)
	c.JSON(http.StatusOK, gin.H{
		"action":  action,
		"control": s.actions.Point(action),
	})
}

func (s *policyServer) handleValue(c *gin.Context) {
	state, err := strconv.Atoi(c.Param("state"))
	if err != nil || state < 0 || state >= s.policy.NumStates() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad state index"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"value": floats.Max(s.q.RawRowView(state))})
}

func serveTask(name string) (*policyServer, error) {
	var states, actions *tasks.Grid
	var tableName string
	switch name {
	case "double-integrator":
		di := tasks.NewDoubleIntegrator(61, 11)
		states, actions, tableName = di.States, di.Actions, "double_integrator"
	case "mountain-car":
		mc := tasks.NewMountainCar(150, 3)
		states, actions, tableName = mc.States, mc.Actions, "mountain_car"
	case "cart-pole":
		cp := tasks.NewCartPole(11, 5)
		states, actions, tableName = cp.States, cp.Actions, "cart_pole"
	default:
		return nil, fmt.Errorf("unknown task %q", name)
	}
	q, err := tableStore().Load(tableName, states.Len(), actions.Len())
	if err != nil {
		return nil, fmt.Errorf("loading table for %s: %w", name, err)
	}
	return &policyServer{
		q:       q,
		policy:  svp.ExtractPolicy(q),
		states:  states,
		actions: actions,
	}, nil
}

func ServeCommand() *cobra.Command {
	var addr string
	var taskName string

	cmd := &cobra.Command{
		Use: "serve",
		Run: func(cmd *cobra.Command, args []string) {
			server, err := serveTask(taskName)
			if err != nil {
				fmt.Println(err)
				return
			}
			gin.SetMode(gin.ReleaseMode)
			r := gin.New()
			r.POST("/act", server.handleAct)
			r.GET("/policy/:state", server.handlePolicy)
			r.GET("/value/:state", server.handleValue)
			fmt.Printf("Serving %s policy on %s\n", taskName, addr)
			if err := r.Run(addr); err != nil {
				fmt.Println(err)
			}
		},
	}
	cmd.PersistentFlags().StringVar(&addr, "addr", "localhost:7070", "Address to listen on")
	cmd.PersistentFlags().StringVar(&taskName, "task", "double-integrator", "Task whose cached table to serve")
	return cmd
}
