package nft

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/Philanthrify/donation-service/internal/config"
	"github.com/Philanthrify/donation-service/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// 徽章合约ABI定义（简化版）
const badgeContractABI = `[
	{
		"inputs": [
			{"name": "donor", "type": "address"},
			{"name": "nonce", "type": "uint256"},
			{"name": "name", "type": "string"},
			{"name": "attributes", "type": "string"},
			{"name": "royalties", "type": "uint256"}
		],
		"name": "createBadge",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	},
	{
		"inputs": [
			{"name": "nonce", "type": "uint256"},
			{"name": "attributes", "type": "string"}
		],
		"name": "updateBadge",
		"outputs": [],
		"stateMutability": "nonpayable",
		"type": "function"
	}
]`

// badgeTxGasLimit 徽章交易gas上限
const badgeTxGasLimit = 500000

// ChainIssuer 链上徽章签发者
type ChainIssuer struct {
	client       *ethclient.Client
	privateKey   *ecdsa.PrivateKey
	fromAddr     common.Address
	contractAddr common.Address
	chainId      *big.Int
	contractABI  abi.ABI
}

// NewChainIssuer 创建链上徽章签发者
func NewChainIssuer(cfg config.ChainConfig) (*ChainIssuer, error) {
	// 连接链上客户端
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain client: %w", err)
	}

	// 解析私钥
	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	// 解析ABI
	parsedABI, err := abi.JSON(strings.NewReader(badgeContractABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contract ABI: %w", err)
	}

	return &ChainIssuer{
		client:       client,
		privateKey:   privateKey,
		fromAddr:     crypto.PubkeyToAddress(privateKey.PublicKey),
		contractAddr: common.HexToAddress(cfg.ContractAddr),
		chainId:      big.NewInt(cfg.ChainId),
		contractABI:  parsedABI,
	}, nil
}

// CreateBadge 调用合约签发新徽章
func (c *ChainIssuer) CreateBadge(ctx context.Context, donor string, nonce int64, name, attributes string, royalties int64) error {
	err := c.sendCall(ctx, "createBadge",
		common.HexToAddress(donor), big.NewInt(nonce), name, attributes, big.NewInt(royalties))
	if err != nil {
		return fmt.Errorf("failed to create badge on chain: %w", err)
	}
	logger.Info("Submitted createBadge tx for %s, nonce %d", donor, nonce)
	return nil
}

// UpdateBadgeAttributes 调用合约原地更新徽章元数据
func (c *ChainIssuer) UpdateBadgeAttributes(ctx context.Context, nonce int64, attributes string) error {
	if err := c.sendCall(ctx, "updateBadge", big.NewInt(nonce), attributes); err != nil {
		return fmt.Errorf("failed to update badge on chain: %w", err)
	}
	logger.Debug("Submitted updateBadge tx for nonce %d", nonce)
	return nil
}

// sendCall 打包、签名并发送一笔合约交易
func (c *ChainIssuer) sendCall(ctx context.Context, method string, args ...interface{}) error {
	data, err := c.contractABI.Pack(method, args...)
	if err != nil {
		return fmt.Errorf("failed to pack %s call: %w", method, err)
	}

	txNonce, err := c.client.PendingNonceAt(ctx, c.fromAddr)
	if err != nil {
		return fmt.Errorf("failed to get pending nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to suggest gas price: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    txNonce,
		To:       &c.contractAddr,
		Value:    big.NewInt(0),
		Gas:      badgeTxGasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})

	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainId), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	return c.client.SendTransaction(ctx, signedTx)
}
